// Package rdata decodes the RDATA fields of common record types into
// structured values. Decoding is optional and on demand; records
// coming out of the parser always keep their fields verbatim, and
// callers that need typed data reach for this package per record.
package rdata

import (
	"fmt"
	"net/netip"
	"strconv"

	"github.com/haukened/zonestream/internal/zone/domain"
)

// NotSupportedError reports a record type this package cannot decode.
type NotSupportedError struct {
	Type domain.RRType
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s record data decoding not supported", e.Type)
}

// A is a decoded A record.
type A struct {
	Addr netip.Addr
}

// AAAA is a decoded AAAA record.
type AAAA struct {
	Addr netip.Addr
}

// MX is a decoded MX record.
type MX struct {
	Preference uint16
	Exchange   string
}

// SOA is a decoded SOA record.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// TXT is a decoded TXT record, one entry per character string.
type TXT []string

// Name is a decoded single-name record (NS, CNAME, PTR).
type Name struct {
	Target string
}

// Decode converts a record's data fields into the structured value
// for its type: A, AAAA, MX, SOA, TXT, or Name. Types without a
// decoder return a *NotSupportedError.
func Decode(t domain.RRType, data []domain.Field) (any, error) {
	switch t {
	case domain.RRTypeA:
		return decodeA(data)
	case domain.RRTypeAAAA:
		return decodeAAAA(data)
	case domain.RRTypeMX:
		return decodeMX(data)
	case domain.RRTypeSOA:
		return decodeSOA(data)
	case domain.RRTypeTXT:
		return decodeTXT(data)
	case domain.RRTypeNS, domain.RRTypeCNAME, domain.RRTypePTR:
		return decodeName(t, data)
	default:
		return nil, &NotSupportedError{Type: t}
	}
}

func decodeA(data []domain.Field) (A, error) {
	if len(data) != 1 {
		return A{}, fmt.Errorf("A record expects 1 field, got %d", len(data))
	}
	addr, err := netip.ParseAddr(string(data[0]))
	if err != nil {
		return A{}, fmt.Errorf("invalid A address %q: %w", string(data[0]), err)
	}
	if !addr.Is4() {
		return A{}, fmt.Errorf("A address %q is not IPv4", string(data[0]))
	}
	return A{Addr: addr}, nil
}

func decodeAAAA(data []domain.Field) (AAAA, error) {
	if len(data) != 1 {
		return AAAA{}, fmt.Errorf("AAAA record expects 1 field, got %d", len(data))
	}
	addr, err := netip.ParseAddr(string(data[0]))
	if err != nil {
		return AAAA{}, fmt.Errorf("invalid AAAA address %q: %w", string(data[0]), err)
	}
	if !addr.Is6() || addr.Is4In6() {
		return AAAA{}, fmt.Errorf("AAAA address %q is not IPv6", string(data[0]))
	}
	return AAAA{Addr: addr}, nil
}

func decodeMX(data []domain.Field) (MX, error) {
	if len(data) != 2 {
		return MX{}, fmt.Errorf("MX record expects 2 fields, got %d", len(data))
	}
	pref, err := strconv.ParseUint(string(data[0]), 10, 16)
	if err != nil {
		return MX{}, fmt.Errorf("invalid MX preference %q: %w", string(data[0]), err)
	}
	return MX{Preference: uint16(pref), Exchange: string(data[1])}, nil
}

func decodeSOA(data []domain.Field) (SOA, error) {
	if len(data) != 7 {
		return SOA{}, fmt.Errorf("SOA record expects 7 fields, got %d", len(data))
	}
	soa := SOA{MName: string(data[0]), RName: string(data[1])}
	names := [5]string{"serial", "refresh", "retry", "expire", "minimum"}
	vals := [5]*uint32{&soa.Serial, &soa.Refresh, &soa.Retry, &soa.Expire, &soa.Minimum}
	for i := range names {
		v, err := parseInterval(string(data[i+2]))
		if err != nil {
			return SOA{}, fmt.Errorf("invalid SOA %s %q: %w", names[i], string(data[i+2]), err)
		}
		*vals[i] = v
	}
	return soa, nil
}

func decodeTXT(data []domain.Field) (TXT, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("TXT record expects at least 1 field")
	}
	txt := make(TXT, len(data))
	for i, f := range data {
		txt[i] = string(f)
	}
	return txt, nil
}

func decodeName(t domain.RRType, data []domain.Field) (Name, error) {
	if len(data) != 1 {
		return Name{}, fmt.Errorf("%s record expects 1 field, got %d", t, len(data))
	}
	return Name{Target: string(data[0])}, nil
}

var intervalUnits = map[byte]uint64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
	'w': 604800,
}

// parseInterval accepts a plain 32-bit count of seconds or one with a
// single s/m/h/d/w unit suffix, as zonefiles commonly write SOA
// timers.
func parseInterval(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	mult := uint64(1)
	num := s
	if u, ok := intervalUnits[s[len(s)-1]|0x20]; ok {
		mult = u
		num = s[:len(s)-1]
	}
	v, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return 0, err
	}
	v *= mult
	if v > 1<<32-1 {
		return 0, fmt.Errorf("value overflows 32 bits")
	}
	return uint32(v), nil
}

