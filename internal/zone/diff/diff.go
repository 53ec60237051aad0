// Package diff compares two zonefiles structurally. Records are
// grouped into sets of consecutive records sharing an owner name and
// type, the set sequences are aligned with a sequence matcher over a
// bounded window, and the differences are tallied per record type.
//
// Windowing keeps memory proportional to the window size rather than
// the zone size. A window that ends mid-alignment may misreport its
// trailing sets, so on non-final windows every opcode after the last
// common span is discarded and its sets are carried into the next
// window.
package diff

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/haukened/zonestream/internal/zone/common/log"
	"github.com/haukened/zonestream/internal/zone/domain"
)

// DefaultBufferSize is the default window size in record sets.
const DefaultBufferSize = 1 << 16

// Source yields parsed records in zonefile order. io.EOF signals the
// end of the zone.
type Source interface {
	Next() (domain.Record, error)
}

// Options configure a Differ.
type Options struct {
	// BufferSize is the window size in record sets. Both zones must
	// realign within one window; zones whose differences span more
	// sets than this need a larger value. Defaults to
	// DefaultBufferSize.
	BufferSize int
	// IgnoreSerial blanks the SOA serial field before comparison.
	IgnoreSerial bool
	// SkipDNSSEC drops NSEC, NSEC3, and RRSIG records from both zones.
	SkipDNSSEC bool
	// Verbose prints each differing record to the output writer as it
	// is found, prefixed "--" (deleted), "++" (added), or "~-"/"~+"
	// (the old and new form of a changed set).
	Verbose bool
	// Logger receives debug logging. Defaults to the global logger.
	Logger log.Logger
}

// Changes tallies one kind of record set per operation.
type Changes struct {
	Added   uint64 `json:"added,omitempty"`
	Changed uint64 `json:"changed,omitempty"`
	Deleted uint64 `json:"deleted,omitempty"`
}

func (c Changes) zero() bool {
	return c.Added == 0 && c.Changed == 0 && c.Deleted == 0
}

// TypeChanges pairs a record type with its tallies.
type TypeChanges struct {
	Type domain.RRType `json:"type"`
	Changes
}

// Summary is the final outcome of a comparison, types sorted
// ascending.
type Summary struct {
	Types []TypeChanges `json:"types"`
	Total Changes       `json:"total"`
}

// HasChanges reports whether the zones differ at all.
func (s Summary) HasChanges() bool {
	return !s.Total.zero()
}

// String renders the per-type tallies followed by a total block, one
// "  op: n" line per non-zero operation. Identical zones render as
// the empty string.
func (s Summary) String() string {
	if !s.HasChanges() {
		return ""
	}
	var b []byte
	for _, tc := range s.Types {
		b = appendChanges(b, tc.Type.String(), tc.Changes)
	}
	return string(appendChanges(b, "total", s.Total))
}

func appendChanges(b []byte, header string, c Changes) []byte {
	b = append(b, header...)
	b = append(b, ":\n"...)
	if c.Added > 0 {
		b = fmt.Appendf(b, "  added: %d\n", c.Added)
	}
	if c.Changed > 0 {
		b = fmt.Appendf(b, "  changed: %d\n", c.Changed)
	}
	if c.Deleted > 0 {
		b = fmt.Appendf(b, "  deleted: %d\n", c.Deleted)
	}
	return b
}

// recordSet is a run of consecutive records with one owner and type.
type recordSet struct {
	records []domain.Record
}

func (s recordSet) name() string          { return s.records[0].Name }
func (s recordSet) rrtype() domain.RRType { return s.records[0].Type }

// key is the set's alignment identity. Two sets match when owner and
// type match; their members are compared separately.
func (s recordSet) key() string {
	return s.records[0].Name + "\x00" + s.records[0].Type.String()
}

// setReader groups a record stream into record sets, applying the
// serial and DNSSEC filters as records arrive.
type setReader struct {
	src          Source
	ignoreSerial bool
	skipDNSSEC   bool
	pending      *recordSet
	done         bool
}

// fill appends completed sets to buf until it holds max sets or the
// source is exhausted. A set still growing when buf fills stays
// pending for the next call.
func (r *setReader) fill(buf []recordSet, max int) ([]recordSet, error) {
	for !r.done && len(buf) < max {
		rec, err := r.src.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return buf, err
			}
			if r.pending != nil {
				buf = append(buf, *r.pending)
				r.pending = nil
			}
			r.done = true
			break
		}
		switch rec.Type {
		case domain.RRTypeNSEC, domain.RRTypeNSEC3, domain.RRTypeRRSIG:
			if r.skipDNSSEC {
				continue
			}
		case domain.RRTypeSOA:
			if r.ignoreSerial && len(rec.Data) > 2 {
				rec.Data[2] = ""
			}
		}
		if r.pending != nil && r.pending.name() == rec.Name && r.pending.rrtype() == rec.Type {
			r.pending.records = append(r.pending.records, rec)
			continue
		}
		if r.pending != nil {
			buf = append(buf, *r.pending)
		}
		r.pending = &recordSet{records: []domain.Record{rec}}
	}
	return buf, nil
}

// Differ compares an old and a new zone.
type Differ struct {
	old, new *setReader
	oldWin   []recordSet
	newWin   []recordSet

	bufSize int
	verbose bool
	out     io.Writer
	logger  log.Logger

	counts map[domain.RRType]*Changes
	total  Changes
}

// New returns a Differ reading the old and new zones from the given
// sources. Verbose output is written to out.
func New(oldSrc, newSrc Source, out io.Writer, opts Options) *Differ {
	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	return &Differ{
		old: &setReader{
			src:          oldSrc,
			ignoreSerial: opts.IgnoreSerial,
			skipDNSSEC:   opts.SkipDNSSEC,
		},
		new: &setReader{
			src:          newSrc,
			ignoreSerial: opts.IgnoreSerial,
			skipDNSSEC:   opts.SkipDNSSEC,
		},
		bufSize: size,
		verbose: opts.Verbose,
		out:     out,
		logger:  logger,
		counts:  make(map[domain.RRType]*Changes),
	}
}

// Run consumes both zones and accumulates their differences. It
// returns the first parse error from either source, or an error when
// the two zones never realign within one window.
func (d *Differ) Run() error {
	for {
		var err error
		if d.oldWin, err = d.old.fill(d.oldWin, d.bufSize); err != nil {
			return err
		}
		if d.newWin, err = d.new.fill(d.newWin, d.bufSize); err != nil {
			return err
		}

		final := d.old.done && d.new.done
		if final && len(d.oldWin) == 0 && len(d.newWin) == 0 {
			return nil
		}
		d.logger.Debug(map[string]any{
			"old_sets": len(d.oldWin),
			"new_sets": len(d.newWin),
			"final":    final,
		}, "comparing window")

		ops := matchKeys(setKeys(d.oldWin), setKeys(d.newWin))

		// Once a side is fully consumed the other side's tail cannot
		// realign against anything, so its opcodes are trustworthy
		// even mid-stream.
		oldSpent := d.old.done && len(d.oldWin) == 0
		newSpent := d.new.done && len(d.newWin) == 0
		if !final && !oldSpent && !newSpent {
			trimmed, ok := trimToLastEqual(ops)
			if !ok {
				return fmt.Errorf("no common record set within a window of %d sets; increase the buffer size", d.bufSize)
			}
			ops = trimmed
		}

		for _, op := range ops {
			d.apply(op)
		}
		if final {
			return nil
		}
		last := ops[len(ops)-1]
		d.oldWin = sliceTail(d.oldWin, last.I2)
		d.newWin = sliceTail(d.newWin, last.J2)
	}
}

// Summary returns the accumulated tallies, types sorted ascending.
func (d *Differ) Summary() Summary {
	s := Summary{Total: d.total}
	for t, c := range d.counts {
		if c.zero() {
			continue
		}
		s.Types = append(s.Types, TypeChanges{Type: t, Changes: *c})
	}
	sort.Slice(s.Types, func(i, j int) bool { return s.Types[i].Type < s.Types[j].Type })
	return s
}

func (d *Differ) apply(op difflib.OpCode) {
	switch op.Tag {
	case 'e':
		for k := 0; k < op.I2-op.I1; k++ {
			d.compareSets(d.oldWin[op.I1+k], d.newWin[op.J1+k])
		}
	case 'd':
		for _, set := range d.oldWin[op.I1:op.I2] {
			d.deleted(set)
		}
	case 'i':
		for _, set := range d.newWin[op.J1:op.J2] {
			d.added(set)
		}
	case 'r':
		for _, set := range d.oldWin[op.I1:op.I2] {
			d.deleted(set)
		}
		for _, set := range d.newWin[op.J1:op.J2] {
			d.added(set)
		}
	}
}

// compareSets diffs the members of two aligned sets and tallies one
// change when they differ.
func (d *Differ) compareSets(old, new recordSet) {
	m := difflib.NewMatcherWithJunk(recordKeys(old.records), recordKeys(new.records), false, nil)
	changed := false
	for _, op := range m.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		changed = true
		if !d.verbose {
			break
		}
		for _, r := range old.records[op.I1:op.I2] {
			fmt.Fprintf(d.out, "~- %s\n", r)
		}
		for _, r := range new.records[op.J1:op.J2] {
			fmt.Fprintf(d.out, "~+ %s\n", r)
		}
	}
	if changed {
		c := d.typeCount(old.rrtype())
		c.Changed++
		d.total.Changed++
	}
}

func (d *Differ) deleted(set recordSet) {
	if d.verbose {
		for _, r := range set.records {
			fmt.Fprintf(d.out, "-- %s\n", r)
		}
	}
	c := d.typeCount(set.rrtype())
	c.Deleted++
	d.total.Deleted++
}

func (d *Differ) added(set recordSet) {
	if d.verbose {
		for _, r := range set.records {
			fmt.Fprintf(d.out, "++ %s\n", r)
		}
	}
	c := d.typeCount(set.rrtype())
	c.Added++
	d.total.Added++
}

func (d *Differ) typeCount(t domain.RRType) *Changes {
	c, ok := d.counts[t]
	if !ok {
		c = &Changes{}
		d.counts[t] = c
	}
	return c
}

func matchKeys(a, b []string) []difflib.OpCode {
	// Autojunk would discard record sets whose key repeats often,
	// which silently corrupts alignment on large zones.
	return difflib.NewMatcherWithJunk(a, b, false, nil).GetOpCodes()
}

// trimToLastEqual drops every opcode after the last equal span.
// Reports false when the opcodes contain no equal span at all.
func trimToLastEqual(ops []difflib.OpCode) ([]difflib.OpCode, bool) {
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Tag == 'e' {
			return ops[:i+1], true
		}
	}
	return nil, false
}

func setKeys(sets []recordSet) []string {
	keys := make([]string, len(sets))
	for i, s := range sets {
		keys[i] = s.key()
	}
	return keys
}

func recordKeys(recs []domain.Record) []string {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.String()
	}
	return keys
}

// sliceTail retains the sets past the last processed opcode, moved to
// the front of the window for the next round.
func sliceTail(win []recordSet, from int) []recordSet {
	n := copy(win, win[from:])
	return win[:n]
}
