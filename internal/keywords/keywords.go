// Package keywords normalizes prompt text into keyword signatures for
// pattern grouping.
package keywords

import (
	"regexp"
	"strings"
)

// MinTokenLength is the exclusive lower bound on kept token length. Tokens of
// this length or shorter ("is", "the", "a") are dropped from signatures.
const MinTokenLength = 3

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// Extract returns the normalized keyword list for a prompt: lowercased,
// stripped of non-alphanumerics, whitespace-split, short tokens dropped,
// deduplicated preserving first-seen order.
func Extract(prompt string) []string {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(prompt), "")

	var out []string
	seen := map[string]bool{}
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= MinTokenLength {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// Signature joins the extracted keywords into the grouping signature.
// Returns "" for prompts that yield no keywords; such prompts never form or
// join a pattern.
func Signature(prompt string) string {
	return strings.Join(Extract(prompt), " ")
}

// Tokenize lowercases and whitespace-splits text into a token set for
// similarity scoring. Unlike Extract it keeps short tokens and punctuation:
// stopword filtering only happens during signature extraction.
func Tokenize(text string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		set[tok] = true
	}
	return set
}

// Jaccard computes |a ∩ b| / |a ∪ b| over the token sets of two strings.
// Two empty strings score 0.
func Jaccard(a, b string) float64 {
	sa, sb := Tokenize(a), Tokenize(b)

	inter := 0
	for tok := range sa {
		if sb[tok] {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
