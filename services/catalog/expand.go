package catalog

import (
	"strings"
)

// Query expansion: search terms like "fast 2" and "fast two" should find
// the same titles, so the gateway issues an extra general search for the
// spelled variant when a token has one.

var digitToWord = map[string]string{
	"1": "one", "2": "two", "3": "three", "4": "four", "5": "five",
	"6": "six", "7": "seven", "8": "eight", "9": "nine", "10": "ten",
}

var wordToDigit = func() map[string]string {
	m := make(map[string]string, len(digitToWord))
	for d, w := range digitToWord {
		m[w] = d
	}
	return m
}()

// expandQuery returns alternate spellings of query with number tokens
// swapped between digit and word form. The original query is not
// included. At most one variant is produced; queries with no number
// tokens expand to nothing.
func expandQuery(query string) []string {
	tokens := strings.Fields(query)
	variant := make([]string, len(tokens))
	changed := false
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		switch {
		case digitToWord[lower] != "":
			variant[i] = digitToWord[lower]
			changed = true
		case wordToDigit[lower] != "":
			variant[i] = wordToDigit[lower]
			changed = true
		default:
			variant[i] = tok
		}
	}
	if !changed {
		return nil
	}
	return []string{strings.Join(variant, " ")}
}

// detectProviderKeyword scans the query for a recognized streaming
// provider name and, when found, returns the provider ID to use for the
// featured-provider source plus the query with the keyword removed.
func detectProviderKeyword(query string, keywords map[string]int) (providerID int, remainder string, ok bool) {
	tokens := strings.Fields(query)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		id, hit := keywords[strings.ToLower(tok)]
		if hit && !ok {
			providerID = id
			ok = true
			continue
		}
		kept = append(kept, tok)
	}
	if !ok {
		return 0, query, false
	}
	return providerID, strings.TrimSpace(strings.Join(kept, " ")), true
}
