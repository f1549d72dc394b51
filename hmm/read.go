package hmm

import (
	"bufio"
	"fmt"
	"io"
)

// Read reads a HMMER3 hmm text dump and returns the derived model. The
// whole input is consumed before the model is built. The first
// malformed line aborts the parse with a *ParseError.
func Read(r io.Reader) (*HMM, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("Error reading hmm: %s", err)
	}
	return parse(lines)
}

func parse(lines []string) (*HMM, error) {
	// Scan forward for the 'HMM  A  C  ...' header line that opens the
	// model section. Everything before it is free form meta data.
	i := 0
	for ; i < len(lines); i++ {
		if headerLine.MatchString(lines[i]) {
			break
		}
	}
	if i == len(lines) {
		return nil, &ParseError{
			Kind: StructuralViolation,
			Line: len(lines),
			Msg:  "no 'HMM A ...' header line found",
		}
	}

	// The header line is followed by the transition column header, then
	// optionally by the COMPO composite emission row, and then by the
	// begin state's insert emission and transition rows.
	i += 2
	if i < len(lines) && compoLine.MatchString(lines[i]) {
		i++
	}
	if i+1 >= len(lines) {
		return nil, &ParseError{
			Kind: StructuralViolation,
			Line: len(lines),
			Msg:  "unexpected end of file inside the begin state block",
		}
	}
	g, insEm, err := detectInsertEmissions(lines[i])
	if err != nil {
		return nil, at(err, i+1)
	}
	tr, err := transitions(lines[i+1])
	if err != nil {
		return nil, at(err, i+2)
	}
	nodes := []Node{{
		InsertEmit:    insEm,
		Transitions:   tr,
		InsertEntropy: entropy(insEm),
	}}
	i += 2

	// The body is a run of three line groups, one per model position,
	// terminated by the '//' marker. The position carried by each match
	// row must count up from 1 without gaps.
	pos := 1
	for ; i < len(lines); i += 3 {
		if endLine.MatchString(lines[i]) {
			break
		}
		if i+2 >= len(lines) {
			return nil, &ParseError{
				Kind: StructuralViolation,
				Line: len(lines),
				Msg: fmt.Sprintf(
					"end of file inside the three line group for position %d", pos),
			}
		}
		matchEm, err := g.matchEmissions(lines[i], pos)
		if err != nil {
			return nil, at(err, i+1)
		}
		insEm, err := g.insertEmissions(lines[i+1])
		if err != nil {
			return nil, at(err, i+2)
		}
		tr, err := transitions(lines[i+2])
		if err != nil {
			return nil, at(err, i+3)
		}
		mEnt := entropy(matchEm)
		nodes = append(nodes, Node{
			MatchEmit:     matchEm,
			InsertEmit:    insEm,
			Transitions:   tr,
			MatchEntropy:  &mEnt,
			InsertEntropy: entropy(insEm),
		})
		pos++
	}

	return &HMM{
		Alphabet: g.alphabet,
		Nodes:    nodes,
		NormMatchEntropy: rescale(nodes, func(n *Node) *float64 {
			return n.MatchEntropy
		}),
		NormInsertEntropy: rescale(nodes, func(n *Node) *float64 {
			return &n.InsertEntropy
		}),
	}, nil
}
