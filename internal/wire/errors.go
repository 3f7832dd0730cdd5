package wire

import "errors"

// Decode/encode failures. These map directly to the error table in
// the codec design: truncated input, a name that violates the label
// or compression-pointer rules, a resource record whose declared
// RDLENGTH does not match what its structured variant actually
// consumes, and a name that would exceed the 255-octet wire limit.
var (
	ErrTruncated      = errors.New("wire: message truncated")
	ErrMalformedName  = errors.New("wire: malformed name")
	ErrMalformedRR    = errors.New("wire: malformed resource record")
	ErrNameTooLong    = errors.New("wire: name exceeds 255 octets")
	ErrLabelTooLong   = errors.New("wire: label exceeds 63 octets")
	ErrNoQuestion     = errors.New("wire: packet carries no question")
)

// UnsupportedOpcode is informational only per the codec design: the
// codec never refuses to decode or encode a message because of its
// opcode, it just isn't in a position to claim full RFC 1035 support
// for anything beyond QUERY.
type UnsupportedOpcode uint8

func (o UnsupportedOpcode) Error() string {
	return "wire: unsupported opcode (informational)"
}
