package filter

// Outcome represents the decision taken for a single line
type Outcome int

const (
	// Rejected lines matched no include pattern outside the top-N window
	Rejected Outcome = iota
	// Excluded lines matched an exclude pattern and are always dropped
	Excluded
	// Forced lines fall within the top-N window
	Forced
	// Matched lines satisfy an include pattern
	Matched
	// PassThrough lines are shown because no include patterns are configured
	PassThrough
)

// String returns a human-readable representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "Rejected"
	case Excluded:
		return "Excluded"
	case Forced:
		return "Forced"
	case Matched:
		return "Matched"
	case PassThrough:
		return "PassThrough"
	default:
		return "Unknown"
	}
}

// Shown returns true if lines with this outcome are printed
func (o Outcome) Shown() bool {
	return o == Forced || o == Matched || o == PassThrough
}

// Stats summarizes a single FilterStream call
type Stats struct {
	LinesRead   int
	LinesShown  int
	Excluded    int
	Forced      int
	Matched     int
	PassThrough int
	Rejected    int
}

// record counts a line's outcome
func (s *Stats) record(o Outcome) {
	s.LinesRead++
	switch o {
	case Excluded:
		s.Excluded++
	case Forced:
		s.Forced++
	case Matched:
		s.Matched++
	case PassThrough:
		s.PassThrough++
	default:
		s.Rejected++
	}
	if o.Shown() {
		s.LinesShown++
	}
}
