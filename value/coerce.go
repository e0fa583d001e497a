package value

import (
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jelloman/cheap-sub008/cheaperr"
)

// Coerce attempts to convert raw into a Value of kind, per spec §4.3:
// string→Integer/Float/Boolean via strict parse, numeric zero/one→Boolean,
// other mismatches fail with TypeMismatch. element names the PropertyDef
// for error reporting. nullable controls whether a null raw value is
// accepted.
func Coerce(raw Value, kind Kind, nullable bool, element string) (Value, error) {
	if raw == nil || raw.IsNull() {
		if !nullable {
			return nil, cheaperr.New(cheaperr.KindNullNotAllowed, element, "property is not nullable")
		}
		return NewNull(kind), nil
	}
	if raw.Kind() == kind {
		return raw, nil
	}

	switch kind {
	case IntegerKind:
		if s, ok := raw.(String); ok {
			n, err := strconv.ParseInt(string(s), 10, 64)
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as Integer")
			}
			return Integer(n), nil
		}
	case FloatKind:
		if s, ok := raw.(String); ok {
			f, err := strconv.ParseFloat(string(s), 64)
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as Float")
			}
			return Float(f), nil
		}
	case BooleanKind:
		switch rv := raw.(type) {
		case String:
			b, err := strconv.ParseBool(string(rv))
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as Boolean")
			}
			return Boolean(b), nil
		case Integer:
			switch rv {
			case 0:
				return Boolean(false), nil
			case 1:
				return Boolean(true), nil
			}
		case Float:
			switch rv {
			case 0:
				return Boolean(false), nil
			case 1:
				return Boolean(true), nil
			}
		}
	case StringKind:
		if t, ok := raw.(Text); ok {
			return String(t), nil
		}
	case TextKind:
		if s, ok := raw.(String); ok {
			return Text(s), nil
		}
	case BigIntegerKind:
		if s, ok := raw.(String); ok {
			n, ok := new(big.Int).SetString(string(s), 10)
			if !ok {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as BigInteger")
			}
			return BigInteger{V: n}, nil
		}
		if i, ok := raw.(Integer); ok {
			return BigInteger{V: big.NewInt(int64(i))}, nil
		}
	case BigDecimalKind:
		if s, ok := raw.(String); ok {
			d, err := decimal.NewFromString(string(s))
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as BigDecimal")
			}
			return BigDecimal{V: d}, nil
		}
		if f, ok := raw.(Float); ok {
			return BigDecimal{V: decimal.NewFromFloat(float64(f))}, nil
		}
	case DateTimeKind:
		if s, ok := raw.(String); ok {
			t, err := time.Parse(time.RFC3339Nano, string(s))
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as ISO-8601 DateTime")
			}
			return DateTime{V: t}, nil
		}
	case URIKind:
		if s, ok := raw.(String); ok {
			return URI(s), nil
		}
	case UUIDKind:
		if s, ok := raw.(String); ok {
			u, err := uuid.Parse(string(s))
			if err != nil {
				return nil, cheaperr.New(cheaperr.KindTypeMismatch, element, "cannot parse as UUID")
			}
			return UUID{V: u}, nil
		}
	case CLOBKind:
		if s, ok := raw.(String); ok {
			return CLOB(s), nil
		}
	case BLOBKind:
		// BLOB never coerces from a textual representation implicitly.
	}

	return nil, cheaperr.New(cheaperr.KindTypeMismatch, element,
		"cannot coerce "+raw.Kind().String()+" to "+kind.String())
}

// CoerceSequence coerces each element of a raw multi-valued input.
func CoerceSequence(raw []Value, elemKind Kind, nullable bool, element string) (Sequence, error) {
	out := make([]Value, len(raw))
	for i, r := range raw {
		v, err := Coerce(r, elemKind, nullable, element)
		if err != nil {
			return Sequence{}, err
		}
		out[i] = v
	}
	return NewSequence(elemKind, out...), nil
}
