package domain

import (
	"fmt"
	"strings"
)

// Record represents one resource record read from a zonefile: the
// owner name, the resolved TTL and class, the record type, and the
// uninterpreted RDATA fields. Records are immutable value snapshots;
// the parser retains no reference to a Record after yielding it.
type Record struct {
	Name  string  `json:"name"`
	TTL   uint32  `json:"ttl"`
	Class RRClass `json:"class"`
	Type  RRType  `json:"type"`
	Data  []Field `json:"data"`
}

// NewRecord constructs a validated Record. The data slice is copied so
// callers cannot mutate an already-yielded record.
func NewRecord(name string, ttl uint32, class RRClass, rrtype RRType, data []Field) (Record, error) {
	r := Record{
		Name:  name,
		TTL:   ttl,
		Class: class,
		Type:  rrtype,
		Data:  append([]Field(nil), data...),
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks whether the Record fields are valid.
func (r Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("invalid RRType: %d", r.Type)
	}
	if !r.Class.IsValid() {
		return fmt.Errorf("invalid RRClass: %d", r.Class)
	}
	return nil
}

// String renders the record in canonical zonefile form:
// owner, TTL, class, and type followed by the RDATA fields,
// space-joined. Parsing the rendered line yields an equal Record.
func (r Record) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d %s %s", r.Name, r.TTL, r.Class, r.Type)
	for _, f := range r.Data {
		b.WriteByte(' ')
		b.WriteString(f.String())
	}
	return b.String()
}

// Equal reports whether two records have the same owner, TTL, class,
// type, and RDATA field sequence.
func (r Record) Equal(other Record) bool {
	if r.Name != other.Name ||
		r.TTL != other.TTL ||
		r.Class != other.Class ||
		r.Type != other.Type ||
		len(r.Data) != len(other.Data) {
		return false
	}
	for i := range r.Data {
		if r.Data[i] != other.Data[i] {
			return false
		}
	}
	return true
}
