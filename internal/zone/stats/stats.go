// Package stats accumulates per-type RR and RRSet counts over a
// stream of resource records. Sets are tracked by remembering the last
// owner name seen per type, so interleaved sets of different types are
// tolerated as long as each set's members are consecutive among
// records of the same type.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/haukened/zonestream/internal/zone/domain"
)

// Counter accumulates counts record by record.
type Counter struct {
	rr       map[domain.RRType]uint64
	rrsets   map[domain.RRType]uint64
	lastName map[domain.RRType]string
	rrTotal  uint64
	setTotal uint64
	closed   bool
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{
		rr:       make(map[domain.RRType]uint64),
		rrsets:   make(map[domain.RRType]uint64),
		lastName: make(map[domain.RRType]string),
	}
}

// Observe counts one record. A set is closed when the owner name for
// the record's type changes.
func (c *Counter) Observe(r domain.Record) {
	if last, ok := c.lastName[r.Type]; ok {
		if last != r.Name {
			c.rrsets[r.Type]++
			c.setTotal++
			c.lastName[r.Type] = r.Name
		}
	} else {
		c.lastName[r.Type] = r.Name
	}

	c.rr[r.Type]++
	c.rrTotal++
}

// TypeCount is one per-type tally.
type TypeCount struct {
	Type  domain.RRType `json:"type"`
	Count uint64        `json:"count"`
}

// Summary holds the final counts, types sorted ascending.
type Summary struct {
	RR         []TypeCount `json:"rr"`
	RRTotal    uint64      `json:"rr_total"`
	RRSets     []TypeCount `json:"rrsets"`
	RRSetTotal uint64      `json:"rrset_total"`
}

// Summary closes the still-open record sets and returns the totals.
// Safe to call more than once; later Observe calls after the first
// Summary are not supported.
func (c *Counter) Summary() Summary {
	if !c.closed {
		// every type that saw at least one record has one open set left
		for t := range c.lastName {
			c.rrsets[t]++
			c.setTotal++
		}
		c.closed = true
	}
	return Summary{
		RR:         sortedCounts(c.rr),
		RRTotal:    c.rrTotal,
		RRSets:     sortedCounts(c.rrsets),
		RRSetTotal: c.setTotal,
	}
}

func sortedCounts(m map[domain.RRType]uint64) []TypeCount {
	out := make([]TypeCount, 0, len(m))
	for t, n := range m {
		out = append(out, TypeCount{Type: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// String renders the summary in the two-block text form.
func (s Summary) String() string {
	var b strings.Builder
	b.WriteString("\nRR:\n")
	for _, tc := range s.RR {
		fmt.Fprintf(&b, "  %s: %d\n", tc.Type, tc.Count)
	}
	fmt.Fprintf(&b, "  total: %d\n", s.RRTotal)
	b.WriteString("\nRRSet:\n")
	for _, tc := range s.RRSets {
		fmt.Fprintf(&b, "  %s: %d\n", tc.Type, tc.Count)
	}
	fmt.Fprintf(&b, "  total: %d\n", s.RRSetTotal)
	return b.String()
}
