package domain

import "testing"

func TestField_String(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		want  string
	}{
		{"bare word", "192.0.2.1", "192.0.2.1"},
		{"domain name", "mail.example.com.", "mail.example.com."},
		{"empty is quoted", "", `""`},
		{"space is quoted", "first quote", `"first quote"`},
		{"tab is quoted", "a\tb", `"a` + "\t" + `b"`},
		{"semicolon is quoted", "a;b", `"a;b"`},
		{"paren is quoted", "a(b)", `"a(b)"`},
		{"inner quote escaped", `say "hi"`, `"say \"hi\""`},
		{"backslash escaped bare", `a\b`, `a\\b`},
		{"backslash escaped quoted", `a \b`, `"a \\b"`},
		{"non-printable escaped", "\x07", `\007`},
		{"high byte escaped bare", "a\xffb", `a\255b`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.field.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields("a", "b", "c")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("Fields() = %v", got)
	}
}
