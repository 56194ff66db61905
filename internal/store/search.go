package store

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/rogersnm/opbatch/internal/model"
)

type SearchResult struct {
	Index       int
	Kind        model.Kind
	ID          string
	Description string
	Snippet     string
}

// Search matches query, case-insensitively, against each operation's kind,
// description and object IDs, then against its JSON payload. Payload hits
// carry a snippet around the match.
func (s *Session) Search(query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []SearchResult
	for i, op := range s.Operations() {
		r := SearchResult{
			Index:       i,
			Kind:        op.Kind(),
			ID:          model.PrimaryID(op),
			Description: model.Describe(op),
		}
		if matchesQuery(q, string(r.Kind)) || matchesQuery(q, r.Description) || matchesAny(q, objectIDs(op)) {
			results = append(results, r)
			continue
		}
		data, err := json.Marshal(op)
		if err != nil {
			continue
		}
		if matchesQuery(q, string(data)) {
			r.Snippet = snippet(string(data), q)
			results = append(results, r)
		}
	}
	return results
}

func objectIDs(op model.Operation) []string {
	return append(model.CreatedIDs(op), model.ReferencedIDs(op)...)
}

func matchesQuery(q, text string) bool {
	return strings.Contains(strings.ToLower(text), q)
}

func matchesAny(q string, texts []string) bool {
	for _, t := range texts {
		if matchesQuery(q, t) {
			return true
		}
	}
	return false
}

// snippet cuts about 40 bytes of context either side of the first match of
// query, on rune boundaries. The match is found rune by rune with case
// folding since lowercasing can change byte lengths.
func snippet(body, query string) string {
	idx, n := indexFold(body, query)
	if idx < 0 {
		return ""
	}
	start := idx - 40
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(body[start]) {
		start--
	}
	end := idx + n + 40
	if end > len(body) {
		end = len(body)
	}
	for end < len(body) && !utf8.RuneStart(body[end]) {
		end++
	}
	s := body[start:end]
	if start > 0 {
		s = "..." + s
	}
	if end < len(body) {
		s = s + "..."
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// indexFold returns the byte offset and byte length of the first
// case-insensitive match of query in body, or -1.
func indexFold(body, query string) (int, int) {
	if query == "" {
		return -1, 0
	}
	for i := range body {
		if n := prefixFold(body[i:], query); n > 0 {
			return i, n
		}
	}
	return -1, 0
}

func prefixFold(s, prefix string) int {
	n := 0
	for _, qr := range prefix {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 || !strings.EqualFold(string(r), string(qr)) {
			return 0
		}
		n += size
	}
	return n
}
