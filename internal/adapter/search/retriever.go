package search

import (
	"context"
	"log"

	"github.com/weitseng/rolechat/internal/domain"
)

// Searcher is the backend contract the retriever wraps.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Document, error)
}

// Retriever turns backend hits into prompt snippets. Retrieval is an
// optional enrichment: backend failures are logged and absorbed, and the
// caller always gets a usable (possibly empty) snippet list.
type Retriever struct {
	backend Searcher
}

// NewRetriever creates a retriever over backend. A nil backend disables
// retrieval entirely.
func NewRetriever(backend Searcher) *Retriever {
	return &Retriever{backend: backend}
}

// Retrieve returns up to limit snippets for query, in backend relevance
// order.
func (r *Retriever) Retrieve(ctx context.Context, query string, limit int) []domain.RetrievedSnippet {
	if r.backend == nil || limit < 1 {
		return nil
	}

	docs, err := r.backend.Search(ctx, query, limit)
	if err != nil {
		log.Printf("WARN: context retrieval failed, composing without augmentation: %v", err)
		return nil
	}

	snippets := make([]domain.RetrievedSnippet, 0, len(docs))
	for _, doc := range docs {
		if doc.Text == "" {
			continue
		}
		snippets = append(snippets, domain.RetrievedSnippet{Text: doc.Text})
	}
	return snippets
}
