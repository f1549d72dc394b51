package hmm

import (
	"math"

	"github.com/TuftsBCB/seq"
)

// The emission column orders used by HMMER3 text dumps.
var (
	AlphaAmino = seq.NewAlphabet(
		'A', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'K', 'L',
		'M', 'N', 'P', 'Q', 'R', 'S', 'T', 'V', 'W', 'Y',
	)
	AlphaNucleotide = seq.NewAlphabet('A', 'C', 'G', 'T')
)

// Indices into a Node's transition vector, following the column order
// of the transition rows in the file.
const (
	TransMM = iota // match -> match
	TransMI        // match -> insert
	TransMD        // match -> delete
	TransIM        // insert -> match
	TransII        // insert -> insert (self loop)
	TransDM        // delete -> match
	TransDD        // delete -> delete
)

// A Node holds the three states (match, insert and delete) anchored at
// one model position, along with the entropies derived from its
// emission distributions.
type Node struct {
	// MatchEmit holds the match state emission log probabilities in
	// alphabet order. It is nil only for the begin node.
	MatchEmit []float64

	// InsertEmit holds the insert state emission log probabilities in
	// alphabet order. It is present for every node.
	InsertEmit []float64

	// Transitions holds the seven transition log probabilities leaving
	// this position, indexed by the Trans* constants. An entry of +Inf
	// means the transition is impossible.
	Transitions [7]float64

	// MatchEntropy is the Shannon entropy of MatchEmit in bits. It is
	// nil exactly when MatchEmit is nil.
	MatchEntropy *float64

	// InsertEntropy is the Shannon entropy of InsertEmit in bits.
	InsertEntropy float64
}

// An HMM is the derived model read from a HMMER3 hmm file. It is built
// once by Read and never modified afterwards.
type HMM struct {
	// Alphabet is the emission column order the file was read with,
	// either AlphaAmino or AlphaNucleotide.
	Alphabet seq.Alphabet

	// Nodes lists one Node per model position, in file order. Nodes[0]
	// is the begin state; Nodes[i] is model position i.
	Nodes []Node

	// NormMatchEntropy and NormInsertEntropy are the match and insert
	// entropies min-max rescaled onto [0, 1] across all nodes, aligned
	// by index with Nodes. An entry is nil where the entropy is nil.
	NormMatchEntropy  []*float64
	NormInsertEntropy []*float64
}

// entropy returns the Shannon entropy in bits of the distribution given
// as negative natural log probabilities. A +Inf entry is a probability
// of zero and contributes nothing to the sum.
func entropy(logProbs []float64) float64 {
	var h float64
	for _, v := range logProbs {
		p := math.Exp(-v)
		if p == 0 {
			continue
		}
		h -= p * math.Log2(p)
	}
	return h
}

// rescale min-max normalizes one entropy attribute across all nodes.
// Nil entries pass through as nil and take no part in the min/max.
// When every value is equal the divisor is taken as 1, which maps every
// entry to 0.
func rescale(nodes []Node, get func(*Node) *float64) []*float64 {
	min, max := math.Inf(1), math.Inf(-1)
	for i := range nodes {
		if v := get(&nodes[i]); v != nil {
			min = math.Min(min, *v)
			max = math.Max(max, *v)
		}
	}
	rng := max - min
	if max == min {
		rng = 1
	}

	scaled := make([]*float64, len(nodes))
	for i := range nodes {
		v := get(&nodes[i])
		if v == nil {
			continue
		}
		s := (*v - min) / rng
		scaled[i] = &s
	}
	return scaled
}
