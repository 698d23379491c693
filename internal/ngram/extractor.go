package ngram

import (
	"github.com/standardbeagle/logram/internal/logformat"
	"github.com/standardbeagle/logram/internal/types"
)

// LineState carries the trailing context a chunk worker threads from one
// line to the next: the last one or two tokens of the previous line, used
// to seed the pair/triple window that spans the line boundary.
type LineState struct {
	Prev1 string
	Prev2 string
	HasP1 bool
	HasP2 bool
}

// lookahead tokenizes the next line (if any) and returns its first one or
// two tokens, mirroring how a line's own trailing context is derived from
// its predecessor.
func lookahead(nextLine string, hasNext bool, lf logformat.LogFormat) (next1, next2 string, hasN1, hasN2 bool, err error) {
	if !hasNext {
		return "", "", false, false, nil
	}
	tokens, err := logformat.Tokenize(nextLine, lf)
	if err != nil {
		return "", "", false, false, err
	}
	switch len(tokens) {
	case 0:
		return "", "", false, false, nil
	case 1:
		return tokens[0], "", true, false, nil
	default:
		return tokens[0], tokens[1], true, true, nil
	}
}

// ProcessLine tokenizes line, stitches in the trailing context from state
// and the lookahead tokens from nextLine, and accumulates the resulting
// pair and triple windows into dict. It returns the LineState the
// following line should use as its own trailing context.
//
// A line that tokenizes to nothing (grammar mismatch, or an empty Content
// field) contributes no windows and returns state unchanged, so the
// running prev1/prev2 chain is not reset by a line that could not be
// parsed.
func ProcessLine(line string, nextLine string, hasNext bool, lf logformat.LogFormat, state LineState, dict *Dictionary, addToken func(string)) (LineState, error) {
	next1, next2, hasN1, hasN2, err := lookahead(nextLine, hasNext, lf)
	if err != nil {
		return state, err
	}

	tokens, err := logformat.Tokenize(line, lf)
	if err != nil {
		return state, err
	}
	if len(tokens) == 0 {
		// A line that fails to tokenize contributes no windows, but does
		// not clear the trailing context carried from the lines before
		// it — the next line's prev1/prev2 still come from the last
		// line that did tokenize.
		return state, nil
	}

	for _, t := range tokens {
		addToken(t)
	}

	n := len(tokens)
	last1, hasLast1 := tokens[n-1], true
	var last2 string
	hasLast2 := n >= 2
	if hasLast2 {
		last2 = tokens[n-2]
	}

	tokens2 := make([]string, 0, len(tokens)+2)
	if state.HasP1 {
		tokens2 = append(tokens2, state.Prev1)
	}
	tokens2 = append(tokens2, tokens...)
	if hasN1 {
		tokens2 = append(tokens2, next1)
	}

	for i := 0; i+1 < len(tokens2); i++ {
		if key, ok := types.PairKey(tokens2[i], tokens2[i+1]); ok {
			dict.Pairs[key]++
		}
	}

	tokens3 := make([]string, 0, len(tokens2)+2)
	if state.HasP2 {
		tokens3 = append(tokens3, state.Prev2)
	}
	tokens3 = append(tokens3, tokens2...)
	if hasN2 {
		tokens3 = append(tokens3, next2)
	}

	for i := 0; i+2 < len(tokens3); i++ {
		if key, ok := types.TripleKey(tokens3[i], tokens3[i+1], tokens3[i+2]); ok {
			dict.Triples[key]++
		}
	}

	return LineState{Prev1: last1, HasP1: hasLast1, Prev2: last2, HasP2: hasLast2}, nil
}
