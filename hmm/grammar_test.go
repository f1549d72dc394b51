package hmm

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func matchRow(pos string, fields int) string {
	return "      " + pos + strings.Repeat("  2.55379", fields) + "      7 k - m -"
}

func insertRow(fields int) string {
	return strings.Repeat("  2.99573", fields)
}

func TestMatchRowFieldCount(t *testing.T) {
	amino := newRowGrammar(AlphaAmino)

	em, err := amino.matchEmissions(matchRow("1", 20), 1)
	require.NoError(t, err)
	require.Len(t, em, 20)
	require.Equal(t, 2.55379, em[0])

	for _, fields := range []int{19, 21} {
		_, err := amino.matchEmissions(matchRow("1", fields), 1)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "a %d field match row must be rejected", fields)
		require.Equal(t, GrammarViolation, pe.Kind)
	}
}

func TestMatchRowPositionCounter(t *testing.T) {
	amino := newRowGrammar(AlphaAmino)

	_, err := amino.matchEmissions(matchRow("2", 20), 2)
	require.NoError(t, err)

	_, err = amino.matchEmissions(matchRow("2", 20), 1)
	var pe *ParseError
	require.ErrorAs(t, err, &pe, "a row carrying position 2 must fail the counter check for 1")
	require.Equal(t, GrammarViolation, pe.Kind)
	require.Contains(t, pe.Msg, "position 1")
}

func TestInsertRowGrammar(t *testing.T) {
	nuc := newRowGrammar(AlphaNucleotide)

	em, err := nuc.insertEmissions(insertRow(4))
	require.NoError(t, err)
	require.Len(t, em, 4)

	// Trailing annotation columns belong to match rows only.
	_, err = nuc.insertEmissions(insertRow(4) + "      7 k - m -")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, GrammarViolation, pe.Kind)
}

func TestDetectInsertEmissions(t *testing.T) {
	g, em, err := detectInsertEmissions(insertRow(20))
	require.NoError(t, err)
	require.Equal(t, AlphaAmino, g.alphabet)
	require.Len(t, em, 20)

	g, em, err = detectInsertEmissions(insertRow(4))
	require.NoError(t, err)
	require.Equal(t, AlphaNucleotide, g.alphabet)
	require.Len(t, em, 4)

	_, _, err = detectInsertEmissions(insertRow(19))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, GrammarViolation, pe.Kind)
}

func TestTransitionRowSentinel(t *testing.T) {
	tr, err := transitions("  0.01147  4.47363  *  0.61958  0.77255  0.00000  *")
	require.NoError(t, err)
	require.True(t, math.IsInf(tr[TransMD], 1))
	require.True(t, math.IsInf(tr[TransDD], 1))
	require.Equal(t, 0.01147, tr[TransMM])
	require.Equal(t, 4.47363, tr[TransMI])
	require.Equal(t, 0.0, tr[TransDM])

	// The sentinel is only legal in the m->d and d->d columns.
	bad := []string{
		"  *  4.47363  6.98229  0.61958  0.77255  0.00000  0.95510",
		"  0.01147  *  6.98229  0.61958  0.77255  0.00000  0.95510",
		"  0.01147  4.47363  6.98229  *  0.77255  0.00000  0.95510",
		"  0.01147  4.47363  6.98229  0.61958  0.77255  *  0.95510",
	}
	for _, row := range bad {
		_, err := transitions(row)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "row %q must be rejected", row)
		require.Equal(t, GrammarViolation, pe.Kind)
	}
}

func TestTransitionRowShape(t *testing.T) {
	bad := []string{
		"  0.01147  4.47363  6.98229  0.61958  0.77255  0.00000",
		"  0.01147  4.47363  6.98229  0.61958  0.77255  0.00000  0.95510  0.1",
		"0.01147  4.47363  6.98229  0.61958  0.77255  0.00000  0.95510",
	}
	for _, row := range bad {
		_, err := transitions(row)
		var pe *ParseError
		require.ErrorAs(t, err, &pe, "row %q must be rejected", row)
		require.Equal(t, GrammarViolation, pe.Kind)
	}
}

func TestDecodeFieldsRoundTrip(t *testing.T) {
	vals, err := decodeFields([]string{"0.61958", "*", "0.00000"})
	require.NoError(t, err)
	require.Equal(t, 0.61958, vals[0])
	require.True(t, math.IsInf(vals[1], 1))
	require.Equal(t, 0.0, vals[2])
}
