package tikz

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/lkuchenb/hmmer2pdf/hmm"
)

const tikzSettings = `    [
    % Overall settings
    every node/.append style={scale=0.05},
    font=\small,
    line width=\lwidth,
    % Probability text nodes
    prob/.style={inner sep=.5mm, fill=white, midway},
    loopprob/.style={prob, above=.03mm},
    dprob/.style={prob, near end},
    % General states
    state/.style={minimum size=2.0em, inner sep=0mm, draw},
    % General emitting states
    emitting/.style={state, circle},
    % General non-emitting states
    nonemitting/.style={state, diamond},
    % m-state settings
    mstate/.style={emitting, minimum size=2.0em},
    % i-state settings
    istate/.style={emitting},
    % d-state settings
    dstate/.style={nonemitting, fill=red},
    % Arrows
    arr/.tip={Triangle[scale=.1]},
    % Transitions
    trans/.style=[-arr],
    ]
`

// Write renders the model as a complete standalone LaTeX document on w.
func Write(w io.Writer, model *hmm.HMM, style Style) error {
	d := &drawer{buf: bufio.NewWriter(w), model: model, style: style}
	d.header()
	for pos := 0; pos <= len(model.Nodes); pos++ {
		d.position(pos)
	}
	for pos := 0; pos < len(model.Nodes); pos++ {
		d.arcs(pos)
	}
	d.footer()
	if d.err != nil {
		return d.err
	}
	return d.buf.Flush()
}

// A drawer emits document text and remembers the first write error, so
// the drawing code can stay free of error plumbing.
type drawer struct {
	buf   *bufio.Writer
	model *hmm.HMM
	style Style
	err   error
}

func (d *drawer) pf(format string, v ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.buf, format, v...)
}

func (d *drawer) header() {
	s := d.style
	d.pf("\\documentclass[tikz,crop,%dpt]{standalone}\n", s.FontPt)
	d.pf("\\usetikzlibrary{positioning}\n")
	d.pf("\\usetikzlibrary{matrix}\n")
	d.pf("\\usetikzlibrary{arrows.meta}\n")
	d.pf("\\usetikzlibrary{shapes.geometric}\n")
	d.pf("\\newlength\\hdist\n\\newlength\\vdist\n\\newlength\\lwidth\n")
	d.pf("\\setlength\\hdist{%s}\n", s.HDist)
	d.pf("\\setlength\\vdist{%s}\n", s.VDist)
	d.pf("\\setlength\\lwidth{%s}\n", s.LineWidth)
	d.pf("\\colorlet{mcolor}{%s}\n", s.MatchColor)
	d.pf("\\colorlet{icolor}{%s}\n", s.InsertColor)
	d.pf("\\begin{document}\n    \\begin{tikzpicture}\n")
	d.pf("%s", tikzSettings)
}

func (d *drawer) footer() {
	d.pf("    \\end{tikzpicture}\n\\end{document}\n")
}

// position draws the state nodes and emission tables for one position.
// Position 0 is the begin cap 'B' and position len(Nodes) is the end
// cap 'E'; neither cap has emission tables of its own.
func (d *drawer) position(pos int) {
	n := len(d.model.Nodes)

	mfill := "gray!50"
	var mtext string
	switch {
	case pos == 0:
		mtext = "B"
	case pos == n:
		mtext = "E"
	default:
		mtext = fmt.Sprintf("$m_{%d}$", pos)
		mfill = fmt.Sprintf("mcolor!%d", intensity(*d.model.NormMatchEntropy[pos]))
	}
	anchor := ""
	if pos > 0 {
		anchor = fmt.Sprintf(", right=\\hdist of m%d", pos-1)
	}
	d.pf("        \\node[mstate, fill=%s%s] (m%d) {%s};\n", mfill, anchor, pos, mtext)

	if pos < n {
		ifill := fmt.Sprintf("icolor!%d", intensity(*d.model.NormInsertEntropy[pos]))
		d.pf("        \\node[istate, fill = %s, above right=\\vdist and .5\\hdist of m%d] (i%d) {$i_{%d}$};\n",
			ifill, pos, pos, pos)
		d.pf("        \\node[dstate, below=\\vdist of m%d] (d%d) {$d_{%d}$};\n",
			pos, pos, pos)
	}

	if pos > 0 && pos < n {
		d.emissions(pos, d.model.Nodes[pos].MatchEmit, "below=1.8mm of m", "mcolor")
	}
	if pos < n {
		d.emissions(pos, d.model.Nodes[pos].InsertEmit, "above=.8mm of i", "icolor")
	}
}

// emissions draws one emission probability table. Alphabets beyond ten
// symbols are folded into two column pairs so the amino acid table
// stays compact.
func (d *drawer) emissions(pos int, logProbs []float64, anchor, color string) {
	n := len(logProbs)
	rows := n
	if n > 10 {
		rows = (n + 1) / 2
	}
	d.pf("\n        \\matrix [inner sep=.05mm, outer sep=0pt, %s%d, "+
		"matrix of nodes, nodes={inner sep=.2mm, font=\\tiny, minimum size=1.0em}, "+
		"row sep=.04mm] (m) {%%\n", anchor, pos)
	for r := 0; r < rows; r++ {
		d.pf("            ")
		for c := 0; r+c*rows < n; c++ {
			i := r + c*rows
			p := math.Exp(-logProbs[i])
			if c > 0 {
				d.pf(" & ")
			}
			d.pf("|[circle, fill=%s!%d]|%c & $%.3f$",
				color, int(math.Floor(100*p)), d.model.Alphabet[i], p)
		}
		d.pf("\\\\\n")
	}
	d.pf("        };\n")
	d.pf("        \\draw [rounded corners=.1mm] (m.south west) rectangle (m.north east);\n")
}

// arcs draws the seven transition arcs leaving one position. Arcs with
// probability zero (a '*' in the file) are not drawn at all; in
// particular the match to delete and delete to delete arcs of the last
// position never appear, which keeps every drawn arc anchored on nodes
// that exist.
func (d *drawer) arcs(pos int) {
	var probs [7]float64
	for i, v := range d.model.Nodes[pos].Transitions {
		probs[i] = math.Exp(-v)
	}

	m0 := fmt.Sprintf("m%d", pos)
	m1 := fmt.Sprintf("m%d", pos+1)
	i0 := fmt.Sprintf("i%d", pos)
	d0 := fmt.Sprintf("d%d", pos)
	d1 := fmt.Sprintf("d%d", pos+1)

	arc := func(i int, from, to, label string) {
		if probs[i] <= 0 {
			return
		}
		d.pf("        \\draw [trans, line width=%s\\lwidth] (%s) -- (%s) node [%s] {$%.3f$};\n",
			widthCoeff(probs[i]), from, to, label, probs[i])
	}

	arc(hmm.TransMM, m0, m1, "prob")
	arc(hmm.TransMI, m0, i0, "prob")
	arc(hmm.TransMD, m0, d1, "dprob")
	arc(hmm.TransIM, i0, m1, "prob")
	if p := probs[hmm.TransII]; p > 0 {
		d.pf("        \\draw [trans, line width=%s\\lwidth] (%s) to [out=60,in=120,looseness=8] node [loopprob] {$%.3f$} (%s) ;\n",
			widthCoeff(p), i0, p, i0)
	}
	arc(hmm.TransDM, d0, m1, "dprob")
	arc(hmm.TransDD, d0, d1, "prob")
}

// intensity converts a normalized entropy into a color saturation
// percentage. Low entropy means a conserved position and gets the more
// intense fill.
func intensity(norm float64) int {
	return int(math.Floor(100 * (1 - norm)))
}

// widthCoeff scales an arc's line width with its probability.
func widthCoeff(p float64) string {
	return strconv.FormatFloat(1+2*p, 'g', -1, 64)
}
