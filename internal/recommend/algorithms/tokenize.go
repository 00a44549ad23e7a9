// Foodrec - Hybrid Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodrec

package algorithms

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball"
)

// englishStopwords are dropped before stemming.
var englishStopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {}, "afterwards": {},
	"again": {}, "against": {}, "all": {}, "almost": {}, "alone": {}, "along": {},
	"already": {}, "also": {}, "although": {}, "always": {}, "am": {}, "among": {},
	"amongst": {}, "an": {}, "and": {}, "another": {}, "any": {}, "anyhow": {},
	"anyone": {}, "anything": {}, "anyway": {}, "anywhere": {}, "are": {}, "around": {},
	"as": {}, "at": {}, "back": {}, "be": {}, "became": {}, "because": {},
	"become": {}, "becomes": {}, "becoming": {}, "been": {}, "before": {}, "beforehand": {},
	"behind": {}, "being": {}, "below": {}, "beside": {}, "besides": {}, "between": {},
	"beyond": {}, "both": {}, "but": {}, "by": {}, "can": {}, "cannot": {},
	"could": {}, "did": {}, "do": {}, "does": {}, "done": {}, "down": {},
	"due": {}, "during": {}, "each": {}, "eg": {}, "either": {}, "else": {},
	"elsewhere": {}, "enough": {}, "etc": {}, "even": {}, "ever": {}, "every": {},
	"everyone": {}, "everything": {}, "everywhere": {}, "except": {}, "few": {}, "for": {},
	"former": {}, "formerly": {}, "from": {}, "further": {}, "had": {}, "has": {},
	"have": {}, "he": {}, "hence": {}, "her": {}, "here": {}, "hereafter": {},
	"hereby": {}, "herein": {}, "hereupon": {}, "hers": {}, "herself": {}, "him": {},
	"himself": {}, "his": {}, "how": {}, "however": {}, "i": {}, "ie": {},
	"if": {}, "in": {}, "indeed": {}, "into": {}, "is": {}, "it": {},
	"its": {}, "itself": {}, "just": {}, "last": {}, "latter": {}, "latterly": {},
	"least": {}, "less": {}, "many": {}, "may": {}, "me": {}, "meanwhile": {},
	"might": {}, "more": {}, "moreover": {}, "most": {}, "mostly": {}, "much": {},
	"must": {}, "my": {}, "myself": {}, "namely": {}, "neither": {}, "never": {},
	"nevertheless": {}, "next": {}, "no": {}, "nobody": {}, "none": {}, "noone": {},
	"nor": {}, "not": {}, "nothing": {}, "now": {}, "nowhere": {}, "of": {},
	"off": {}, "often": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"onto": {}, "or": {}, "other": {}, "others": {}, "otherwise": {}, "our": {},
	"ours": {}, "ourselves": {}, "out": {}, "over": {}, "own": {}, "per": {},
	"perhaps": {}, "please": {}, "rather": {}, "re": {}, "same": {}, "seem": {},
	"seemed": {}, "seeming": {}, "seems": {}, "several": {}, "she": {}, "should": {},
	"since": {}, "so": {}, "some": {}, "somehow": {}, "someone": {}, "something": {},
	"sometime": {}, "sometimes": {}, "somewhere": {}, "still": {}, "such": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "themselves": {}, "then": {},
	"thence": {}, "there": {}, "thereafter": {}, "thereby": {}, "therefore": {}, "therein": {},
	"thereupon": {}, "these": {}, "they": {}, "this": {}, "those": {}, "though": {},
	"through": {}, "throughout": {}, "thru": {}, "thus": {}, "to": {}, "together": {},
	"too": {}, "toward": {}, "towards": {}, "under": {}, "until": {}, "up": {},
	"upon": {}, "us": {}, "very": {}, "via": {}, "was": {}, "we": {},
	"well": {}, "were": {}, "what": {}, "whatever": {}, "when": {}, "whence": {},
	"whenever": {}, "where": {}, "whereafter": {}, "whereas": {}, "whereby": {}, "wherein": {},
	"whereupon": {}, "wherever": {}, "whether": {}, "which": {}, "while": {}, "whither": {},
	"who": {}, "whoever": {}, "whole": {}, "whom": {}, "whose": {}, "why": {},
	"will": {}, "with": {}, "within": {}, "without": {}, "would": {}, "yet": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {}, "yourselves": {},
}

// minTokenLength is the shortest token, in runes, kept by the tokenizer.
const minTokenLength = 2

// Tokenizer turns free text into stemmed index terms.
type Tokenizer struct {
	tokenRegex *regexp.Regexp
	stem       bool
}

// NewTokenizer creates a tokenizer. When stem is false tokens are returned as
// lowercased words.
func NewTokenizer(stem bool) *Tokenizer {
	return &Tokenizer{
		tokenRegex: regexp.MustCompile(`[\p{L}\p{N}]+`),
		stem:       stem,
	}
}

// Tokens lowercases text, splits it on anything that is not a letter or
// digit, drops short tokens and English stop words, then stems what is left.
func (t *Tokenizer) Tokens(text string) []string {
	words := t.tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}

	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenLength {
			continue
		}
		if _, stop := englishStopwords[w]; stop {
			continue
		}
		if t.stem {
			stemmed, err := snowball.Stem(w, "english", false)
			if err == nil && stemmed != "" {
				w = stemmed
			}
		}
		out = append(out, w)
	}
	return out
}
