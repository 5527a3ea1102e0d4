package core

import (
	"sort"
)

// DiagnosticKind names a class of non-fatal render anomaly
type DiagnosticKind string

const (
	DiagNonUnitNormal          DiagnosticKind = "non_unit_normal"
	DiagKOutOfRange            DiagnosticKind = "k_out_of_range"
	DiagLightSamplingExhausted DiagnosticKind = "light_sampling_exhausted"
	DiagNonFiniteColour        DiagnosticKind = "non_finite_colour"
	DiagPixelFault             DiagnosticKind = "pixel_fault"
)

// DiagnosticKey groups counts by kind and offending object
type DiagnosticKey struct {
	Kind   DiagnosticKind
	Object string
}

// DiagnosticEntry is one row of a diagnostics report
type DiagnosticEntry struct {
	DiagnosticKey
	Count int
}

// Diagnostics counts anomalies. Each worker owns one and the render job merges
// them at the end, so no locking is needed. A nil *Diagnostics ignores records.
type Diagnostics struct {
	counts map[DiagnosticKey]int
}

// NewDiagnostics creates an empty collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{counts: make(map[DiagnosticKey]int)}
}

// Record increments the counter for kind and object
func (d *Diagnostics) Record(kind DiagnosticKind, object string) {
	if d == nil {
		return
	}
	d.counts[DiagnosticKey{Kind: kind, Object: object}]++
}

// Count returns the counter for kind and object
func (d *Diagnostics) Count(kind DiagnosticKind, object string) int {
	if d == nil {
		return 0
	}
	return d.counts[DiagnosticKey{Kind: kind, Object: object}]
}

// Total returns the count for kind summed over all objects
func (d *Diagnostics) Total(kind DiagnosticKind) int {
	if d == nil {
		return 0
	}
	total := 0
	for key, count := range d.counts {
		if key.Kind == kind {
			total += count
		}
	}
	return total
}

// Empty reports whether nothing was recorded
func (d *Diagnostics) Empty() bool {
	return d == nil || len(d.counts) == 0
}

// Merge adds every counter of other into d
func (d *Diagnostics) Merge(other *Diagnostics) {
	if d == nil || other == nil {
		return
	}
	for key, count := range other.counts {
		d.counts[key] += count
	}
}

// Entries returns all counters sorted by kind then object
func (d *Diagnostics) Entries() []DiagnosticEntry {
	if d == nil {
		return nil
	}
	entries := make([]DiagnosticEntry, 0, len(d.counts))
	for key, count := range d.counts {
		entries = append(entries, DiagnosticEntry{DiagnosticKey: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Object < entries[j].Object
	})
	return entries
}
