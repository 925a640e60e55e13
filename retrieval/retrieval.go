// Package retrieval implements a small in-memory keyword index used by the
// retrieval-augmented generation examples. Scoring is intentionally simple:
// query terms are matched case-insensitively against title, category and
// body, with title hits weighted highest.
package retrieval

import (
	"sort"
	"strings"
)

// Field weights for keyword matches.
const (
	titleWeight    = 3
	categoryWeight = 2
	contentWeight  = 1
)

// Document is one indexable knowledge-base entry.
type Document struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Hit pairs a matched document with its relevance score.
type Hit struct {
	Document Document `json:"document"`
	Score    int      `json:"score"`
}

// Index is an immutable keyword index over a fixed document set.
type Index struct {
	docs []Document
}

// NewIndex builds an index over docs. The slice is copied.
func NewIndex(docs []Document) *Index {
	copied := make([]Document, len(docs))
	copy(copied, docs)

	return &Index{docs: copied}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return len(idx.docs) }

// Search scores every document against the query terms and returns up to
// limit hits ordered by descending score. Documents with zero score are
// excluded. Ties keep index order, so results are deterministic.
func (idx *Index) Search(query string, limit int) []Hit {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	hits := make([]Hit, 0, len(idx.docs))

	for _, doc := range idx.docs {
		score := scoreDocument(doc, terms)
		if score > 0 {
			hits = append(hits, Hit{Document: doc, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	return hits
}

func scoreDocument(doc Document, terms []string) int {
	title := strings.ToLower(doc.Title)
	category := strings.ToLower(doc.Category)
	content := strings.ToLower(doc.Content)

	score := 0

	for _, term := range terms {
		if strings.Contains(title, term) {
			score += titleWeight
		}

		if strings.Contains(category, term) {
			score += categoryWeight
		}

		if strings.Contains(content, term) {
			score += contentWeight
		}
	}

	return score
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))

	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?\"'()")
		if f != "" {
			terms = append(terms, f)
		}
	}

	return terms
}
