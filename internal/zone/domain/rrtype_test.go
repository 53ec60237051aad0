package domain

import (
	"testing"
)

func TestRRType_IsValid(t *testing.T) {
	cases := []struct {
		value RRType
		want  bool
	}{
		{1, true}, {2, true}, {5, true}, {6, true}, {12, true}, {15, true}, {16, true},
		{28, true}, {33, true}, {46, true}, {47, true}, {50, true}, {64, true}, {65, true},
		{108, true}, {109, true}, {257, true}, {262, true}, {32768, true}, {32769, true},
		{0, false}, {3, false}, {4, false}, {7, false}, {41, false}, {255, false}, {9999, false},
	}
	for _, tc := range cases {
		if got := tc.value.IsValid(); got != tc.want {
			t.Errorf("IsValid(%d) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestRRType_String(t *testing.T) {
	cases := []struct {
		t    RRType
		want string
	}{
		{1, "A"}, {2, "NS"}, {5, "CNAME"}, {6, "SOA"}, {12, "PTR"}, {13, "HINFO"},
		{15, "MX"}, {16, "TXT"}, {28, "AAAA"}, {33, "SRV"}, {35, "NAPTR"}, {43, "DS"},
		{46, "RRSIG"}, {47, "NSEC"}, {48, "DNSKEY"}, {50, "NSEC3"}, {51, "NSEC3PARAM"},
		{52, "TLSA"}, {63, "ZONEMD"}, {64, "SVCB"}, {65, "HTTPS"}, {108, "EUI48"},
		{109, "EUI64"}, {256, "URI"}, {257, "CAA"}, {262, "WALLET"}, {32768, "TA"}, {32769, "DLV"},
		{0, "UNKNOWN(0)"}, {3, "UNKNOWN(3)"}, {9999, "UNKNOWN(9999)"},
	}
	for _, tc := range cases {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("String(%d) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestRRTypeFromString(t *testing.T) {
	cases := []struct {
		input string
		want  RRType
	}{
		{"A", 1}, {"a", 1}, {"NS", 2}, {"cname", 5}, {"SOA", 6}, {"Mx", 15}, {"TXT", 16},
		{"AAAA", 28}, {"srv", 33}, {"RRSIG", 46}, {"nsec3param", 51}, {"CAA", 257},
		{"ta", 32768}, {"DLV", 32769},
		{"UNKNOWN", 0}, {"", 0}, {"foo", 0}, {"3600", 0},
	}
	for _, tc := range cases {
		if got := RRTypeFromString(tc.input); got != tc.want {
			t.Errorf("RRTypeFromString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestRRType_TextRoundTrip(t *testing.T) {
	for value, name := range rrTypeNames {
		text, err := value.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s) returned error: %v", name, err)
		}
		var back RRType
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) returned error: %v", text, err)
		}
		if back != value {
			t.Errorf("round trip for %s: got %d, want %d", name, back, value)
		}
	}

	if _, err := RRType(9999).MarshalText(); err == nil {
		t.Error("expected error marshaling unknown RRType, got nil")
	}
	var v RRType
	if err := v.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error unmarshaling unknown mnemonic, got nil")
	}
}
