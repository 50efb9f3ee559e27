package core

import (
	"context"

	"menoassist-chatbot/internal/llm"
)

// AskService answers free-form questions using retrieval over the reference
// documents.  It is a pluggable collaborator: the intake funnel never depends
// on it.
type AskService struct {
	LLM   llm.Client
	Index *Index
}

// NewAskService constructs an AskService over a built index.
func NewAskService(client llm.Client, index *Index) *AskService {
	return &AskService{LLM: client, Index: index}
}

// Ask embeds the question, retrieves the single closest document and asks the
// LLM to answer from it.  On LLM failure a generic fallback message is
// returned alongside the error so the caller can still reply to the user.
func (s *AskService) Ask(ctx context.Context, question string) (string, error) {
	var contextDocs []string
	if s.Index != nil && s.Index.Len() > 0 {
		vectors, err := s.LLM.Embed(ctx, []string{question})
		if err != nil {
			return AskFallback, err
		}
		for _, d := range s.Index.Search(vectors[0], 1) {
			contextDocs = append(contextDocs, d.Content)
		}
	}
	answer, err := s.LLM.Answer(ctx, question, contextDocs)
	if err != nil {
		return AskFallback, err
	}
	return answer, nil
}
