package gif

// Outcome tells how a parse pass ended.
type Outcome int

const (
	OutcomeTrailer   Outcome = iota // trailer byte reached
	OutcomeTruncated                // input ended before the trailer
	OutcomePlainText                // stopped after a plain text extension
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTrailer:
		return "trailer"
	case OutcomeTruncated:
		return "truncated"
	case OutcomePlainText:
		return "plain text"
	}
	return "unknown"
}

// Options configures Parse.
type Options struct {
	// StopAtPlainText makes Parse return right after the first plain text
	// extension with OutcomePlainText. The returned document holds every block
	// read up to that point. If that extension was cut short the outcome is
	// OutcomeTruncated instead.
	StopAtPlainText bool
}

// DefaultOptions parses the whole stream.
func DefaultOptions() *Options {
	return &Options{}
}
