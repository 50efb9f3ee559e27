package core

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"menoassist-chatbot/internal/llm"
)

// Document is one reference text loaded from the documents directory.
type Document struct {
	Source  string
	Content string
}

// Index is an in-memory vector index over the reference documents.  It is
// built once at startup and read-only afterwards.
type Index struct {
	docs    []Document
	vectors [][]float32
}

// LoadTextFiles reads every .txt file in dir into a Document.  A missing or
// empty directory yields an empty slice, not an error, so the assistant can
// run without reference material.
func LoadTextFiles(dir string) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Source: e.Name(), Content: string(content)})
	}
	return docs, nil
}

// BuildIndex embeds the documents and returns a searchable index.  With no
// documents the index is empty and Search returns nothing.
func BuildIndex(ctx context.Context, client llm.Client, docs []Document) (*Index, error) {
	ix := &Index{docs: docs}
	if len(docs) == 0 {
		return ix, nil
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	vectors, err := client.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	ix.vectors = vectors
	return ix, nil
}

// Search returns the k documents closest to the query vector by cosine
// similarity, best first.
func (ix *Index) Search(query []float32, k int) []Document {
	if len(ix.vectors) == 0 || k <= 0 {
		return nil
	}
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		scores[i] = scored{idx: i, score: cosine(query, v)}
	}
	sort.Slice(scores, func(a, b int) bool { return scores[a].score > scores[b].score })
	if k > len(scores) {
		k = len(scores)
	}
	out := make([]Document, k)
	for i := 0; i < k; i++ {
		out[i] = ix.docs[scores[i].idx]
	}
	return out
}

// Len reports how many documents are indexed.
func (ix *Index) Len() int { return len(ix.docs) }

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
