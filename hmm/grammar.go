package hmm

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/TuftsBCB/seq"
)

// The markers delimiting the model section of an hmm file, and the one
// row shape that does not depend on the alphabet. The two '*' capable
// fields of a transition row are m->d and d->d; everywhere else the
// sentinel is rejected.
var (
	headerLine = regexp.MustCompile(`^HMM\s+A\s+`)
	compoLine  = regexp.MustCompile(`^\s+COMPO\s+`)
	endLine    = regexp.MustCompile(`^//`)
	transLine  = regexp.MustCompile(
		`^ +( +\d+[.]\d+){2} +(\d+[.]\d+|[*])( +\d+[.]\d+){3} +(\d+[.]\d+|[*])$`)
)

// A rowGrammar holds the compiled row shapes for one alphabet. The
// trailing columns of a match row are the MAP (integer or '-'), CONS,
// RF, MM ('m' or '-') and CS annotations.
type rowGrammar struct {
	alphabet seq.Alphabet
	match    *regexp.Regexp
	insert   *regexp.Regexp
}

func newRowGrammar(alphabet seq.Alphabet) rowGrammar {
	n := alphabet.Len()
	return rowGrammar{
		alphabet: alphabet,
		match: regexp.MustCompile(fmt.Sprintf(
			`^ +(\d+)( +\d+[.]\d+){%d} +(\d+|-) ([a-zA-Z.]|-) ([a-zA-Z.]|-) [m-] ([a-zA-Z.]|-)$`,
			n)),
		insert: regexp.MustCompile(fmt.Sprintf(`^ +( +\d+[.]\d+){%d}$`, n)),
	}
}

// The candidate grammars, tried in this order until one matches the
// first emission row of a file.
var grammars = []rowGrammar{
	newRowGrammar(AlphaAmino),
	newRowGrammar(AlphaNucleotide),
}

// detectInsertEmissions validates the first emission row of a file
// against each candidate grammar in turn. The grammar that matches
// fixes the alphabet for the rest of the parse.
func detectInsertEmissions(line string) (rowGrammar, []float64, error) {
	for _, g := range grammars {
		if !g.insert.MatchString(line) {
			continue
		}
		em, err := decodeFields(strings.Fields(line))
		return g, em, err
	}
	return rowGrammar{}, nil, &ParseError{
		Kind: GrammarViolation,
		Text: line,
		Msg:  "invalid insert state emission probability row",
	}
}

// matchEmissions validates a match emission row and decodes its log
// probabilities. pos is the 1-based model position the row must carry
// in its first column.
func (g rowGrammar) matchEmissions(line string, pos int) ([]float64, error) {
	m := g.match.FindStringSubmatch(line)
	if m == nil || m[1] != strconv.Itoa(pos) {
		return nil, &ParseError{
			Kind: GrammarViolation,
			Text: line,
			Msg: fmt.Sprintf(
				"match state position %d: invalid emission probability row", pos),
		}
	}
	n := g.alphabet.Len()
	return decodeFields(strings.Fields(line)[1 : n+1])
}

// insertEmissions validates an insert emission row and decodes its log
// probabilities.
func (g rowGrammar) insertEmissions(line string) ([]float64, error) {
	if !g.insert.MatchString(line) {
		return nil, &ParseError{
			Kind: GrammarViolation,
			Text: line,
			Msg:  "invalid insert state emission probability row",
		}
	}
	return decodeFields(strings.Fields(line))
}

// transitions validates a transition row and decodes its seven log
// probabilities.
func transitions(line string) (tr [7]float64, err error) {
	if !transLine.MatchString(line) {
		return tr, &ParseError{
			Kind: GrammarViolation,
			Text: line,
			Msg:  "invalid transition probability row",
		}
	}
	vals, err := decodeFields(strings.Fields(line))
	if err != nil {
		return tr, err
	}
	copy(tr[:], vals)
	return tr, nil
}

// decodeFields decodes whitespace separated probability fields. The '*'
// sentinel stands for a transition of probability zero and decodes to
// +Inf; every other field is a plain decimal.
func decodeFields(fields []string) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		if f == "*" {
			vals[i] = math.Inf(1)
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, &ParseError{
				Kind: NumericDecodeViolation,
				Text: f,
				Msg:  "field passed its row grammar but is not a finite number",
			}
		}
		vals[i] = v
	}
	return vals, nil
}
