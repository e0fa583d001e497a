package serial

import (
	"encoding/base64"
	"time"

	"github.com/Jelloman/cheap-sub008/cheaperr"
	"github.com/Jelloman/cheap-sub008/value"
)

// encodeScalar renders v as a JSON-marshalable Go value. Nulls render
// as JSON null; BLOB renders as base64 (the same representation
// encoding/json would choose for a raw []byte).
func encodeScalar(v value.Value) interface{} {
	if v == nil || v.IsNull() {
		return nil
	}
	switch t := v.(type) {
	case value.Integer:
		return int64(t)
	case value.Float:
		return float64(t)
	case value.Boolean:
		return bool(t)
	case value.String:
		return string(t)
	case value.Text:
		return string(t)
	case value.BigInteger:
		return t.V.String()
	case value.BigDecimal:
		return t.V.String()
	case value.DateTime:
		return t.V.Format(time.RFC3339Nano)
	case value.URI:
		return string(t)
	case value.UUID:
		return t.V.String()
	case value.CLOB:
		return string(t)
	case value.BLOB:
		return base64.StdEncoding.EncodeToString(t)
	case value.Sequence:
		arr := make([]interface{}, len(t.Elems))
		for i, e := range t.Elems {
			arr[i] = encodeScalar(e)
		}
		return arr
	default:
		return nil
	}
}

// decodeScalar decodes a generically-parsed JSON value (string,
// float64, bool, nil, or a nested []interface{}/map[string]interface{})
// into a Value of kind, applying the coercion rules of spec §4.3 when
// the wire representation doesn't already match kind (e.g. numbers
// arriving as strings for BigInteger/BigDecimal/DateTime/UUID).
func decodeScalar(raw interface{}, kind value.Kind, nullable bool, element string) (value.Value, error) {
	if raw == nil {
		if !nullable {
			return nil, cheaperr.New(cheaperr.KindNullNotAllowed, element, "property is not nullable")
		}
		return value.NewNull(kind), nil
	}

	switch kind {
	case value.IntegerKind:
		if f, ok := raw.(float64); ok {
			return value.Integer(int64(f)), nil
		}
	case value.FloatKind:
		if f, ok := raw.(float64); ok {
			return value.Float(f), nil
		}
	case value.BooleanKind:
		if b, ok := raw.(bool); ok {
			return value.Boolean(b), nil
		}
		if f, ok := raw.(float64); ok {
			return value.Coerce(value.Float(f), kind, nullable, element)
		}
	case value.StringKind:
		if s, ok := raw.(string); ok {
			return value.String(s), nil
		}
	case value.TextKind:
		if s, ok := raw.(string); ok {
			return value.Text(s), nil
		}
	case value.URIKind:
		if s, ok := raw.(string); ok {
			return value.URI(s), nil
		}
	case value.CLOBKind:
		if s, ok := raw.(string); ok {
			return value.CLOB(s), nil
		}
	case value.BLOBKind:
		if s, ok := raw.(string); ok {
			b, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindMalformedInput, element, "invalid base64 BLOB content")
			}
			return value.BLOB(b), nil
		}
	}

	if s, ok := raw.(string); ok {
		return value.Coerce(value.String(s), kind, nullable, element)
	}
	return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot decode wire value as "+kind.String())
}

// decodeSequence decodes a JSON array into a multi-valued Sequence.
func decodeSequence(raw interface{}, elemKind value.Kind, nullable bool, element string) (value.Sequence, error) {
	arr, ok := raw.([]interface{})
	if !ok {
		return value.Sequence{}, cheaperr.New(cheaperr.KindTypeMismatch, element, "multi-valued property requires a JSON array")
	}
	elems := make([]value.Value, len(arr))
	for i, r := range arr {
		v, err := decodeScalar(r, elemKind, nullable, element)
		if err != nil {
			return value.Sequence{}, err
		}
		elems[i] = v
	}
	return value.NewSequence(elemKind, elems...), nil
}
