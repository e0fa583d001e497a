// Package hash implements the fixed-width content digest used to
// content-address AspectDefs (spec §4.3, "AspectDefs carry a content
// hash order-sensitive in property definitions"). The shape — a sized
// byte array with a base32 string form and a panicking Parse — mirrors
// the teacher's store/hash package.
package hash

import (
	"crypto/sha512"
	"encoding/base32"
	"fmt"
)

// ByteLen is the digest width: the low 20 bytes of a SHA-512/256 sum,
// the same width the teacher's hash package uses.
const ByteLen = 20

// StringLen is the length of the base32 string encoding of a Hash.
const StringLen = 32

var encoding = base32.NewEncoding("0123456789abcdefghijklmnopqrstuv").WithPadding(base32.NoPadding)

// Hash is an opaque content digest.
type Hash [ByteLen]byte

// Empty is the zero-value Hash.
var Empty = Hash{}

// Of computes the content hash of data.
func Of(data []byte) Hash {
	sum := sha512.Sum512_256(data)
	var h Hash
	copy(h[:], sum[:ByteLen])
	return h
}

// New builds a Hash from exactly ByteLen bytes.
func New(data []byte) Hash {
	if len(data) != ByteLen {
		panic(fmt.Sprintf("hash.New: expected %d bytes, got %d", ByteLen, len(data)))
	}
	var h Hash
	copy(h[:], data)
	return h
}

// IsEmpty reports whether h is the zero hash.
func (h Hash) IsEmpty() bool { return h == Empty }

// String renders h as a fixed-length base32 string.
func (h Hash) String() string { return encoding.EncodeToString(h[:]) }

// Parse decodes a base32-encoded Hash string, panicking on malformed input
// the way the teacher's Parse does — callers that need a recoverable
// parse should use MaybeParse.
func Parse(s string) Hash {
	h, ok := MaybeParse(s)
	if !ok {
		panic(fmt.Sprintf("invalid hash string: %q", s))
	}
	return h
}

// MaybeParse decodes a base32-encoded Hash string, reporting failure
// instead of panicking.
func MaybeParse(s string) (Hash, bool) {
	if len(s) != StringLen {
		return Hash{}, false
	}
	data, err := encoding.DecodeString(s)
	if err != nil || len(data) != ByteLen {
		return Hash{}, false
	}
	var h Hash
	copy(h[:], data)
	return h, true
}
