package probetable

import "github.com/cockroachdb/redact"

// Stats is a snapshot of a table's operational counters
type Stats struct {
	// Collisions counts insertions that had to step over at least one
	// occupied slot before finding their place.
	Collisions int
	// ProbeTotal is the number of occupied slots stepped over by all
	// insertions.
	ProbeTotal int
	// ProbeMax is the longest probe chain of a single insertion.
	ProbeMax int
	// Rehashes counts growth events.
	Rehashes int
}

var _ redact.SafeFormatter = Stats{}

// SafeFormat implements redact.SafeFormatter. All counters are safe.
func (s Stats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("collisions=%d probe_total=%d probe_max=%d rehashes=%d",
		redact.SafeInt(s.Collisions), redact.SafeInt(s.ProbeTotal),
		redact.SafeInt(s.ProbeMax), redact.SafeInt(s.Rehashes))
}

func (s Stats) String() string {
	return redact.StringWithoutMarkers(s)
}

// recordInsertProbe accounts for one successful insertion probe that
// stepped over dist occupied slots
func (s *Stats) recordInsertProbe(dist int) {
	if dist > s.ProbeMax {
		s.ProbeMax = dist
	}
	if dist > 0 {
		s.Collisions++
	}
}
