package wire

import "strconv"

// RecordType is a 16-bit DNS RR type code. Unrecognized codes are
// still round-tripped bit-exact; Known reports whether this core
// assigns them a name.
type RecordType uint16

const (
	TypeA     RecordType = 1
	TypeNS    RecordType = 2
	TypeCNAME RecordType = 5
	TypeSOA   RecordType = 6
	TypePTR   RecordType = 12
	TypeMX    RecordType = 15
	TypeTXT   RecordType = 16
	TypeAAAA  RecordType = 28
	TypeOPT   RecordType = 41
)

var typeNames = map[RecordType]string{
	TypeA: "A", TypeNS: "NS", TypeCNAME: "CNAME", TypeSOA: "SOA",
	TypePTR: "PTR", TypeMX: "MX", TypeTXT: "TXT", TypeAAAA: "AAAA", TypeOPT: "OPT",
}

func (t RecordType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
}

// Known reports whether the type has a named variant in this core.
func (t RecordType) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// RecordClass is a 16-bit DNS class code. For OPT pseudo-records this
// field is repurposed by EDNS0 to carry the requestor's UDP payload
// size and must not be interpreted as a class; the codec stores it
// verbatim either way and leaves that interpretation to callers.
type RecordClass uint16

const ClassIN RecordClass = 1

func (c RecordClass) String() string {
	if c == ClassIN {
		return "IN"
	}
	return "UNKNOWN(" + strconv.Itoa(int(c)) + ")"
}

// Known reports whether the class has a named variant in this core.
func (c RecordClass) Known() bool { return c == ClassIN }

// ResponseCode is the 4-bit RCODE field.
type ResponseCode uint8

const (
	RcodeNoError  ResponseCode = 0
	RcodeFormErr  ResponseCode = 1
	RcodeServFail ResponseCode = 2
	RcodeNXDomain ResponseCode = 3
	RcodeNotImp   ResponseCode = 4
	RcodeRefused  ResponseCode = 5
)

var rcodeNames = map[ResponseCode]string{
	RcodeNoError: "NOERROR", RcodeFormErr: "FORMERR", RcodeServFail: "SERVFAIL",
	RcodeNXDomain: "NXDOMAIN", RcodeNotImp: "NOTIMP", RcodeRefused: "REFUSED",
}

func (r ResponseCode) String() string {
	if name, ok := rcodeNames[r]; ok {
		return name
	}
	return "UNKNOWN(" + strconv.Itoa(int(r)) + ")"
}

// Known reports whether the rcode has a named variant in this core.
func (r ResponseCode) Known() bool {
	_, ok := rcodeNames[r]
	return ok
}

// IsTerminal reports whether a resolver encountering this rcode from
// an upstream should stop iterating and return the response as-is.
func (r ResponseCode) IsTerminal() bool {
	switch r {
	case RcodeNXDomain, RcodeFormErr, RcodeServFail, RcodeNotImp, RcodeRefused:
		return true
	default:
		return !r.Known()
	}
}
