package domain

import (
	"fmt"
	"strings"
)

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassIN RRClass = 1 // IN - Internet
	RRClassCH RRClass = 3 // CH - Chaos
	RRClassHS RRClass = 4 // HS - Hesiod
)

// IsValid returns true if the RRClass is one of the supported classes.
func (c RRClass) IsValid() bool {
	switch c {
	case RRClassIN, RRClassCH, RRClassHS:
		return true
	default:
		return false
	}
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
	}
}

// RRClassFromString converts a class mnemonic (any case) to an RRClass value.
// Unknown mnemonics yield 0.
func RRClassFromString(s string) RRClass {
	switch strings.ToUpper(s) {
	case "IN":
		return RRClassIN
	case "CH":
		return RRClassCH
	case "HS":
		return RRClassHS
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler, rendering the mnemonic.
func (c RRClass) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("cannot marshal unknown RRClass %d", uint16(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RRClass) UnmarshalText(text []byte) error {
	v := RRClassFromString(string(text))
	if v == 0 {
		return fmt.Errorf("unknown RRClass %q", string(text))
	}
	*c = v
	return nil
}
