package value

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Value is a single property value: one of the twelve primitive kinds,
// the explicit null variant for any kind, or a Sequence for a
// multi-valued property (spec §3.2).
type Value interface {
	// Kind reports the primitive type this value belongs to.
	Kind() Kind
	// IsNull reports whether this is the explicit absent/null variant.
	IsNull() bool
	// Equals reports deep equality against another Value, per §4.3's
	// "fully equal" rule (sequences compare element-wise in order).
	Equals(other Value) bool
}

// Null is the explicit absent value for a given Kind (spec §9: "Null
// values are represented as an explicit absent variant in the value
// type, not as a sentinel pointer").
type Null struct{ kind Kind }

// NewNull builds the null value for kind.
func NewNull(kind Kind) Null { return Null{kind: kind} }

func (n Null) Kind() Kind    { return n.kind }
func (n Null) IsNull() bool  { return true }
func (n Null) Equals(other Value) bool {
	return other != nil && other.IsNull() && other.Kind() == n.kind
}

type Integer int64

func (Integer) Kind() Kind   { return IntegerKind }
func (Integer) IsNull() bool { return false }
func (v Integer) Equals(other Value) bool {
	o, ok := other.(Integer)
	return ok && o == v
}

type Float float64

func (Float) Kind() Kind   { return FloatKind }
func (Float) IsNull() bool { return false }
func (v Float) Equals(other Value) bool {
	o, ok := other.(Float)
	return ok && o == v
}

// Boolean is tri-state: true, false, or the null variant (spec §3.2).
type Boolean bool

func (Boolean) Kind() Kind   { return BooleanKind }
func (Boolean) IsNull() bool { return false }
func (v Boolean) Equals(other Value) bool {
	o, ok := other.(Boolean)
	return ok && o == v
}

// MaxStringCodePoints is the length limit for the String kind; Text is
// unbounded (spec §3.2).
const MaxStringCodePoints = 8192

type String string

func (String) Kind() Kind   { return StringKind }
func (String) IsNull() bool { return false }
func (v String) Equals(other Value) bool {
	o, ok := other.(String)
	return ok && o == v
}

// Text is unbounded-length character data, always written as a whole
// (atomic — no partial/streamed update, spec §3.2).
type Text string

func (Text) Kind() Kind   { return TextKind }
func (Text) IsNull() bool { return false }
func (v Text) Equals(other Value) bool {
	o, ok := other.(Text)
	return ok && o == v
}

// BigInteger is an unbounded-precision integer.
type BigInteger struct{ V *big.Int }

func NewBigInteger(v *big.Int) BigInteger { return BigInteger{V: v} }

func (BigInteger) Kind() Kind   { return BigIntegerKind }
func (BigInteger) IsNull() bool { return false }
func (v BigInteger) Equals(other Value) bool {
	o, ok := other.(BigInteger)
	return ok && v.V.Cmp(o.V) == 0
}

// BigDecimal is an unbounded-precision decimal, backed by
// shopspring/decimal (the teacher's go.mod dependency for this).
type BigDecimal struct{ V decimal.Decimal }

func NewBigDecimal(v decimal.Decimal) BigDecimal { return BigDecimal{V: v} }

func (BigDecimal) Kind() Kind   { return BigDecimalKind }
func (BigDecimal) IsNull() bool { return false }
func (v BigDecimal) Equals(other Value) bool {
	o, ok := other.(BigDecimal)
	return ok && v.V.Equal(o.V)
}

// DateTime is an instant with timezone; ISO-8601 on the wire (spec §3.2).
type DateTime struct{ V time.Time }

func NewDateTime(t time.Time) DateTime { return DateTime{V: t} }

func (DateTime) Kind() Kind   { return DateTimeKind }
func (DateTime) IsNull() bool { return false }
func (v DateTime) Equals(other Value) bool {
	o, ok := other.(DateTime)
	return ok && v.V.Equal(o.V)
}

// URI is an RFC 3986 URI reference, stored as its canonical string form.
type URI string

func (URI) Kind() Kind   { return URIKind }
func (URI) IsNull() bool { return false }
func (v URI) Equals(other Value) bool {
	o, ok := other.(URI)
	return ok && o == v
}

// UUID is an RFC 4122 UUID value (distinct from Entity identity, though
// both are backed by google/uuid).
type UUID struct{ V uuid.UUID }

func NewUUID(u uuid.UUID) UUID { return UUID{V: u} }

func (UUID) Kind() Kind   { return UUIDKind }
func (UUID) IsNull() bool { return false }
func (v UUID) Equals(other Value) bool {
	o, ok := other.(UUID)
	return ok && v.V == o.V
}

// CLOB is an unbounded character stream.
type CLOB string

func (CLOB) Kind() Kind   { return CLOBKind }
func (CLOB) IsNull() bool { return false }
func (v CLOB) Equals(other Value) bool {
	o, ok := other.(CLOB)
	return ok && o == v
}

// BLOB is an unbounded byte stream.
type BLOB []byte

func (BLOB) Kind() Kind   { return BLOBKind }
func (BLOB) IsNull() bool { return false }
func (v BLOB) Equals(other Value) bool {
	o, ok := other.(BLOB)
	if !ok || len(o) != len(v) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Sequence is the value of a multi-valued property: an ordered list of
// same-kind values. Mutation always replaces the whole sequence — there
// is no partial in-place edit (spec §3.2).
type Sequence struct {
	ElemKind Kind
	Elems    []Value
}

func NewSequence(kind Kind, elems ...Value) Sequence {
	return Sequence{ElemKind: kind, Elems: elems}
}

func (s Sequence) Kind() Kind   { return s.ElemKind }
func (Sequence) IsNull() bool   { return false }
func (s Sequence) Equals(other Value) bool {
	o, ok := other.(Sequence)
	if !ok || len(o.Elems) != len(s.Elems) || o.ElemKind != s.ElemKind {
		return false
	}
	for i := range s.Elems {
		if !s.Elems[i].Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}

// Equal is a package-level convenience matching the teacher's
// pervasive Value.Equals usage, for callers holding two values of
// unknown concrete type.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// DebugString renders v for diagnostics and error messages (grounded on
// the teacher's types.EncodedValue helper).
func DebugString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	if v.IsNull() {
		return "null"
	}
	switch t := v.(type) {
	case Integer:
		return fmt.Sprintf("%d", int64(t))
	case Float:
		return fmt.Sprintf("%g", float64(t))
	case Boolean:
		if t {
			return "true"
		}
		return "false"
	case String:
		return string(t)
	case Text:
		return string(t)
	case BigInteger:
		return t.V.String()
	case BigDecimal:
		return t.V.String()
	case DateTime:
		return t.V.Format(time.RFC3339Nano)
	case URI:
		return string(t)
	case UUID:
		return t.V.String()
	case CLOB:
		return string(t)
	case BLOB:
		return fmt.Sprintf("<blob:%d bytes>", len(t))
	case Sequence:
		s := "["
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += DebugString(e)
		}
		return s + "]"
	default:
		return "<unknown>"
	}
}
