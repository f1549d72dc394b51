/*
Package hmm provides routines for reading (but not writing) hmm files,
which are the text dumps of profile hidden Markov models produced by
HMMER3's hmmbuild program.

Beyond the raw log probabilities, the model returned is annotated with
the Shannon entropy of every emission distribution and with min-max
normalized entropy vectors that can be used directly as color
intensities when drawing the model.

Both alphabets emitted by HMMER3 are supported: amino acid (20 symbols)
and nucleotide (4 symbols). The alphabet is detected from the first
emission row and every later row must agree with it.

All probabilities are kept in the file's native unit, the negative
natural logarithm of the probability. The '*' sentinel found in
transition rows stands for a probability of exactly zero and is decoded
as +Inf.
*/
package hmm
