package hmm

import "fmt"

// An ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// GrammarViolation means a line failed the row grammar for its
	// expected row kind.
	GrammarViolation ErrorKind = iota

	// StructuralViolation means the file is missing the 'HMM A ...'
	// header line, or ended in the middle of a three line node group.
	StructuralViolation

	// NumericDecodeViolation means a field passed its row grammar but
	// could not be decoded as a finite number. The grammars are strict
	// enough that this should never happen; it exists as a safeguard
	// against the grammars and the decoder drifting apart.
	NumericDecodeViolation
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarViolation:
		return "grammar violation"
	case StructuralViolation:
		return "structural violation"
	case NumericDecodeViolation:
		return "numeric decode violation"
	}
	return "unknown violation"
}

// A ParseError describes the first problem encountered while reading an
// hmm file. Parsing stops at the first error; no partial model is ever
// returned.
type ParseError struct {
	Kind ErrorKind
	Line int    // 1-based line number in the input
	Text string // the offending raw text, if any
	Msg  string
}

func (e *ParseError) Error() string {
	if len(e.Text) == 0 {
		return fmt.Sprintf("%s on line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s on line %d: %s: '%s'", e.Kind, e.Line, e.Msg, e.Text)
}

// at fills in the line number of a ParseError built by a row helper,
// which validates text without knowing where it came from.
func at(err error, line int) error {
	if pe, ok := err.(*ParseError); ok {
		pe.Line = line
	}
	return err
}
