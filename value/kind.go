// Package value implements the twelve-member primitive value lattice
// of spec §3.2: the Kind enumeration, the Value interface and its
// twelve concrete implementations plus the explicit null variant, and
// the coercion rules used when decoding raw input against a
// PropertyDef's declared type.
package value

import "fmt"

// Kind enumerates the twelve primitive value types.
type Kind uint8

const (
	IntegerKind Kind = iota
	FloatKind
	BooleanKind
	StringKind
	TextKind
	BigIntegerKind
	BigDecimalKind
	DateTimeKind
	URIKind
	UUIDKind
	CLOBKind
	BLOBKind
)

var kindNames = [...]string{
	IntegerKind:    "Integer",
	FloatKind:      "Float",
	BooleanKind:    "Boolean",
	StringKind:     "String",
	TextKind:       "Text",
	BigIntegerKind: "BigInteger",
	BigDecimalKind: "BigDecimal",
	DateTimeKind:   "DateTime",
	URIKind:        "URI",
	UUIDKind:       "UUID",
	CLOBKind:       "CLOB",
	BLOBKind:       "BLOB",
}

var kindCodes = [...]string{
	IntegerKind:    "INT",
	FloatKind:      "FLT",
	BooleanKind:    "BLN",
	StringKind:     "STR",
	TextKind:       "TXT",
	BigIntegerKind: "BGI",
	BigDecimalKind: "BGF",
	DateTimeKind:   "DAT",
	URIKind:        "URI",
	UUIDKind:       "UID",
	CLOBKind:       "CLB",
	BLOBKind:       "BLB",
}

// String returns the enum name (e.g. "Integer"), as used in the JSON
// wire format's propertyDef.type field.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Code returns the three-letter type code (e.g. "INT"), as used in the
// relational schema's type_code column.
func (k Kind) Code() string {
	if int(k) >= len(kindCodes) {
		return "???"
	}
	return kindCodes[k]
}

// KindByName resolves an enum name back to a Kind.
func KindByName(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// KindByCode resolves a three-letter type code back to a Kind.
func KindByCode(code string) (Kind, bool) {
	for i, c := range kindCodes {
		if c == code {
			return Kind(i), true
		}
	}
	return 0, false
}
