package llm

import (
	"context"
	"errors"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client defines the methods required by the retrieval question-answering
// service.  Answer produces a reply grounded on the retrieved context
// snippets; Embed turns texts into vectors for the document index.
type Client interface {
	Answer(ctx context.Context, question string, context []string) (string, error)
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// Readiness is the typed result of the capability probe run at construction.
// When the fine-tuned model is unavailable the client is degraded to the
// default chat model and Reason records why.
type Readiness struct {
	Model    string
	Degraded bool
	Reason   string
}

// OpenAIClient calls the OpenAI API for embeddings and chat completions.
// API credentials and model names are loaded from environment variables.
type OpenAIClient struct {
	client       *openai.Client
	chatModel    string
	systemPrompt string
}

// ModelLookup resolves a model id with the serving API.  It exists so the
// capability probe can be exercised without network access.
type ModelLookup func(ctx context.Context, modelID string) error

// Probe runs the capability check for the fine-tuned model.  When fineTuned
// is empty or the lookup fails, the returned Readiness carries the default
// model; a failed lookup additionally marks the result degraded with the
// lookup error as the reason.
func Probe(ctx context.Context, lookup ModelLookup, defaultModel, fineTuned string) Readiness {
	ready := Readiness{Model: defaultModel}
	if fineTuned == "" {
		return ready
	}
	if err := lookup(ctx, fineTuned); err != nil {
		ready.Degraded = true
		ready.Reason = "fine-tuned model unavailable: " + err.Error()
		return ready
	}
	ready.Model = fineTuned
	return ready
}

// NewOpenAIClient constructs an OpenAI-backed client. It reads the API key and
// model names from the environment (OPENAI_API_KEY, OPENAI_MODEL_CHAT,
// OPENAI_MODEL_FINE_TUNED) and probes the fine-tuned model: if the probe
// fails the client falls back to the default chat model and the returned
// Readiness says so.
func NewOpenAIClient(ctx context.Context, systemPrompt string) (*OpenAIClient, Readiness) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	c := openai.NewClient(apiKey)

	chatModel := os.Getenv("OPENAI_MODEL_CHAT")
	if chatModel == "" {
		chatModel = "gpt-4o-mini"
	}

	lookup := func(ctx context.Context, modelID string) error {
		_, err := c.GetModel(ctx, modelID)
		return err
	}
	ready := Probe(ctx, lookup, chatModel, os.Getenv("OPENAI_MODEL_FINE_TUNED"))

	return &OpenAIClient{
		client:       c,
		chatModel:    ready.Model,
		systemPrompt: systemPrompt,
	}, ready
}

// Answer sends the question plus retrieved context to the chat completion API
// and returns the assistant's response.
func (c *OpenAIClient) Answer(ctx context.Context, question string, contextDocs []string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai client not initialized")
	}
	content := question
	for _, doc := range contextDocs {
		content = doc + "\n\n" + content
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Embed returns one embedding vector per input text.
func (c *OpenAIClient) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if c.client == nil {
		return nil, errors.New("openai client not initialized")
	}
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: inputs,
		Model: openai.AdaEmbeddingV2,
	})
	if err != nil {
		return nil, err
	}
	vectors := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		vectors[i] = d.Embedding
	}
	return vectors, nil
}
