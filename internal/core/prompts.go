package core

// prompts.go defines the literal prompt strings used by the free-form
// question-answering path.  Keeping these in a separate file makes them easy
// to tweak without touching the rest of the code.

const (
	// AskSystemPrompt frames the assistant for free-form menopause questions.
	// Answers must stay grounded in the retrieved document excerpts.
	AskSystemPrompt = "You are a friendly menopause assistant. Answer the user's question using only the " +
		"reference material provided before it. Be brief, supportive and practical. Do not diagnose, " +
		"and suggest speaking to a clinician for anything medical that the material does not cover."

	// AskFallback is returned to the user when the LLM call fails.
	AskFallback = "I'm sorry, I can't answer that right now. Please try again in a moment."
)
