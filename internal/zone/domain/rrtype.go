package domain

import (
	"fmt"
	"strings"
)

// RRType represents a DNS resource record type (e.g. A, AAAA, MX).
// See IANA DNS Parameters for assigned codes.
type RRType uint16

// DNS Resource Record Type constants
const (
	RRTypeA          RRType = 1     // A - IPv4 address
	RRTypeNS         RRType = 2     // NS - Name server
	RRTypeCNAME      RRType = 5     // CNAME - Canonical name
	RRTypeSOA        RRType = 6     // SOA - Start of authority
	RRTypePTR        RRType = 12    // PTR - Pointer
	RRTypeHINFO      RRType = 13    // HINFO - Host information
	RRTypeMX         RRType = 15    // MX - Mail exchange
	RRTypeTXT        RRType = 16    // TXT - Text
	RRTypeRP         RRType = 17    // RP - Responsible person
	RRTypeAFSDB      RRType = 18    // AFSDB - AFS database
	RRTypeSIG        RRType = 24    // SIG - Signature (obsoleted by RRSIG)
	RRTypeKEY        RRType = 25    // KEY - Key (obsoleted by DNSKEY)
	RRTypeAAAA       RRType = 28    // AAAA - IPv6 address
	RRTypeLOC        RRType = 29    // LOC - Location
	RRTypeSRV        RRType = 33    // SRV - Service
	RRTypeNAPTR      RRType = 35    // NAPTR - Naming authority pointer
	RRTypeKX         RRType = 36    // KX - Key exchange
	RRTypeCERT       RRType = 37    // CERT - Certificate
	RRTypeDNAME      RRType = 39    // DNAME - Delegation name
	RRTypeAPL        RRType = 42    // APL - Address prefix list
	RRTypeDS         RRType = 43    // DS - Delegation signer
	RRTypeSSHFP      RRType = 44    // SSHFP - SSH fingerprint
	RRTypeIPSECKEY   RRType = 45    // IPSECKEY - IPsec key
	RRTypeRRSIG      RRType = 46    // RRSIG - Resource record signature
	RRTypeNSEC       RRType = 47    // NSEC - Next secure
	RRTypeDNSKEY     RRType = 48    // DNSKEY - DNS key
	RRTypeDHCID      RRType = 49    // DHCID - DHCP identifier
	RRTypeNSEC3      RRType = 50    // NSEC3 - Next secure v3
	RRTypeNSEC3PARAM RRType = 51    // NSEC3PARAM - NSEC3 parameters
	RRTypeTLSA       RRType = 52    // TLSA - TLS association
	RRTypeSMIMEA     RRType = 53    // SMIMEA - S/MIME association
	RRTypeHIP        RRType = 55    // HIP - Host identity protocol
	RRTypeCDS        RRType = 59    // CDS - Child DS
	RRTypeCDNSKEY    RRType = 60    // CDNSKEY - Child DNSKEY
	RRTypeOPENPGPKEY RRType = 61    // OPENPGPKEY - OpenPGP key
	RRTypeCSYNC      RRType = 62    // CSYNC - Child-to-parent sync
	RRTypeZONEMD     RRType = 63    // ZONEMD - Zone message digest
	RRTypeSVCB       RRType = 64    // SVCB - Service binding
	RRTypeHTTPS      RRType = 65    // HTTPS - HTTPS binding
	RRTypeEUI48      RRType = 108   // EUI48 - 48-bit extended unique identifier
	RRTypeEUI64      RRType = 109   // EUI64 - 64-bit extended unique identifier
	RRTypeTKEY       RRType = 249   // TKEY - Transaction key
	RRTypeTSIG       RRType = 250   // TSIG - Transaction signature
	RRTypeURI        RRType = 256   // URI - Uniform resource identifier
	RRTypeCAA        RRType = 257   // CAA - Certificate authority authorization
	RRTypeWALLET     RRType = 262   // WALLET - Public wallet address
	RRTypeTA         RRType = 32768 // TA - DNSSEC trust authorities
	RRTypeDLV        RRType = 32769 // DLV - DNSSEC lookaside validation
)

// rrTypeNames maps each supported RRType to its zonefile mnemonic.
var rrTypeNames = map[RRType]string{
	RRTypeA:          "A",
	RRTypeNS:         "NS",
	RRTypeCNAME:      "CNAME",
	RRTypeSOA:        "SOA",
	RRTypePTR:        "PTR",
	RRTypeHINFO:      "HINFO",
	RRTypeMX:         "MX",
	RRTypeTXT:        "TXT",
	RRTypeRP:         "RP",
	RRTypeAFSDB:      "AFSDB",
	RRTypeSIG:        "SIG",
	RRTypeKEY:        "KEY",
	RRTypeAAAA:       "AAAA",
	RRTypeLOC:        "LOC",
	RRTypeSRV:        "SRV",
	RRTypeNAPTR:      "NAPTR",
	RRTypeKX:         "KX",
	RRTypeCERT:       "CERT",
	RRTypeDNAME:      "DNAME",
	RRTypeAPL:        "APL",
	RRTypeDS:         "DS",
	RRTypeSSHFP:      "SSHFP",
	RRTypeIPSECKEY:   "IPSECKEY",
	RRTypeRRSIG:      "RRSIG",
	RRTypeNSEC:       "NSEC",
	RRTypeDNSKEY:     "DNSKEY",
	RRTypeDHCID:      "DHCID",
	RRTypeNSEC3:      "NSEC3",
	RRTypeNSEC3PARAM: "NSEC3PARAM",
	RRTypeTLSA:       "TLSA",
	RRTypeSMIMEA:     "SMIMEA",
	RRTypeHIP:        "HIP",
	RRTypeCDS:        "CDS",
	RRTypeCDNSKEY:    "CDNSKEY",
	RRTypeOPENPGPKEY: "OPENPGPKEY",
	RRTypeCSYNC:      "CSYNC",
	RRTypeZONEMD:     "ZONEMD",
	RRTypeSVCB:       "SVCB",
	RRTypeHTTPS:      "HTTPS",
	RRTypeEUI48:      "EUI48",
	RRTypeEUI64:      "EUI64",
	RRTypeTKEY:       "TKEY",
	RRTypeTSIG:       "TSIG",
	RRTypeURI:        "URI",
	RRTypeCAA:        "CAA",
	RRTypeWALLET:     "WALLET",
	RRTypeTA:         "TA",
	RRTypeDLV:        "DLV",
}

// rrTypeValues is the reverse lookup from mnemonic to RRType.
var rrTypeValues = func() map[string]RRType {
	m := make(map[string]RRType, len(rrTypeNames))
	for t, name := range rrTypeNames {
		m[name] = t
	}
	return m
}()

// IsValid returns true if the RRType is one of the supported types.
func (t RRType) IsValid() bool {
	_, ok := rrTypeNames[t]
	return ok
}

// String returns the textual representation of the RRType.
// For unknown types, it returns "UNKNOWN(<value>)".
func (t RRType) String() string {
	if name, ok := rrTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(t))
}

// RRTypeFromString converts a record type mnemonic (any case) to its
// corresponding RRType value. Unknown mnemonics yield 0.
func RRTypeFromString(s string) RRType {
	return rrTypeValues[strings.ToUpper(s)]
}

// MarshalText implements encoding.TextMarshaler, rendering the mnemonic.
func (t RRType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal unknown RRType %d", uint16(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RRType) UnmarshalText(text []byte) error {
	v := RRTypeFromString(string(text))
	if v == 0 {
		return fmt.Errorf("unknown RRType %q", string(text))
	}
	*t = v
	return nil
}
