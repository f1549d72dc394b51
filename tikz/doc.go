/*
Package tikz renders a model read by the hmm package as a standalone
TikZ/LaTeX document.

Every model position is drawn as a circular match state, a circular
insert state and a diamond shaped delete state, flanked by synthetic
begin and end caps. Emission distributions appear as small probability
tables next to their states, and the seven transitions leaving each
position are drawn as arcs whose line width grows with the transition
probability. Arcs with probability zero are omitted entirely.

Match and insert states are shaded by the normalized entropy of their
emission distribution: the lower the entropy, the more saturated the
fill, so conserved positions stand out.
*/
package tikz
