// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package geo

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TokenSetRatio scores the similarity of two strings on a 0-100 scale.
// Both strings are lowercased and split into token sets; the score compares
// the shared-token core against each side's remainder, which makes the
// measure robust to word order and to extra words ("Pariis" vs "Paris",
// "new york" vs "New York City").
func TokenSetRatio(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for tok := range tokensA {
		if tokensB[tok] {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tokensB {
		if !tokensA[tok] {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	withA := joinNonEmpty(base, strings.Join(onlyA, " "))
	withB := joinNonEmpty(base, strings.Join(onlyB, " "))

	score := editRatio(base, withA)
	if s := editRatio(base, withB); s > score {
		score = s
	}
	if s := editRatio(withA, withB); s > score {
		score = s
	}
	return score
}

// BestMatch returns the candidate from names most similar to query, with its
// score. ok is false when no candidate reaches the cutoff.
func BestMatch(query string, names []string, cutoff int) (best string, score int, ok bool) {
	for _, name := range names {
		if s := TokenSetRatio(query, name); s > score || (s == score && !ok) {
			best, score = name, s
			ok = true
		}
	}
	if score < cutoff {
		return "", score, false
	}
	return best, score, true
}

// editRatio is a 0-100 similarity derived from Levenshtein edit distance.
func editRatio(a, b string) int {
	if a == b {
		return 100
	}
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (total - dist) * 100 / total
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,!?;:'\"()[]{}")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + " " + b
}
