package hmm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEntropyUniform(t *testing.T) {
	uniform := func(k int) []float64 {
		v := make([]float64, k)
		for i := range v {
			v[i] = math.Log(float64(k))
		}
		return v
	}

	// A uniform distribution over k symbols has the maximal entropy
	// log2(k).
	require.InDelta(t, 2.0, entropy(uniform(4)), 1e-9)
	require.InDelta(t, math.Log2(20), entropy(uniform(20)), 1e-9)
}

func TestEntropyCertain(t *testing.T) {
	// One certain symbol, three impossible ones. The impossible terms
	// must contribute 0 instead of NaN.
	inf := math.Inf(1)
	got := entropy([]float64{0, inf, inf, inf})
	require.False(t, math.IsNaN(got))
	require.Equal(t, 0.0, got)
}

func TestEntropyBounds(t *testing.T) {
	// p = 0.7, 0.1, 0.05, 0.05 as negative natural logs.
	skewed := []float64{
		-math.Log(0.7), -math.Log(0.1), -math.Log(0.05), -math.Log(0.05),
	}
	got := entropy(skewed)
	require.Greater(t, got, 0.0)
	require.Less(t, got, 2.0)
	require.InDelta(t, 1.1246, got, 1e-3)
}

func ptr(v float64) *float64 { return &v }

func entropyNodes(vals []*float64) []Node {
	nodes := make([]Node, len(vals))
	for i, v := range vals {
		nodes[i].MatchEntropy = v
	}
	return nodes
}

func TestRescale(t *testing.T) {
	get := func(n *Node) *float64 { return n.MatchEntropy }

	scaled := rescale(entropyNodes([]*float64{nil, ptr(5), ptr(7), ptr(9)}), get)
	require.Len(t, scaled, 4)
	require.Nil(t, scaled[0])
	require.Equal(t, 0.0, *scaled[1])
	require.Equal(t, 0.5, *scaled[2])
	require.Equal(t, 1.0, *scaled[3])
}

func TestRescaleShiftInvariance(t *testing.T) {
	get := func(n *Node) *float64 { return n.MatchEntropy }

	a := rescale(entropyNodes([]*float64{ptr(1), ptr(2), ptr(4)}), get)
	b := rescale(entropyNodes([]*float64{ptr(11), ptr(12), ptr(14)}), get)
	for i := range a {
		require.Equal(t, *a[i], *b[i], "entry %d must be shift invariant", i)
	}
}

func TestRescaleDegenerate(t *testing.T) {
	get := func(n *Node) *float64 { return n.MatchEntropy }

	// All equal values collapse the range; every entry maps to 0, not
	// to a division by zero.
	scaled := rescale(entropyNodes([]*float64{ptr(2.5), ptr(2.5), ptr(2.5)}), get)
	for i := range scaled {
		require.Equal(t, 0.0, *scaled[i], "entry %d", i)
	}

	scaled = rescale(entropyNodes([]*float64{nil, ptr(2.5)}), get)
	require.Nil(t, scaled[0])
	require.Equal(t, 0.0, *scaled[1])
}
