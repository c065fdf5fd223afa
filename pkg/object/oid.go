package object

import "encoding/hex"

// OidRawSize is the byte width of an object id.
const OidRawSize = 20

// OidHexSize is the length of an object id's hex form.
const OidHexSize = OidRawSize * 2

// Oid is the 20-byte content address of a stored object. The zero value
// is the all-zero id, which never names a real object.
type Oid [OidRawSize]byte

// ParseOid decodes a 40-character hex string into an Oid. Input may use
// either letter case; anything that is not exactly 40 hex characters
// fails with *InvalidOidError.
func ParseOid(s string) (Oid, error) {
	var id Oid
	if len(s) != OidHexSize {
		return Oid{}, &InvalidOidError{Value: s}
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Oid{}, &InvalidOidError{Value: s}
	}
	return id, nil
}

// String returns the canonical 40-character lowercase hex form.
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero reports whether o is the all-zero id.
func (o Oid) IsZero() bool {
	return o == Oid{}
}
