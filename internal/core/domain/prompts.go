package domain

// Built-in prompt templates for question answering.
const (
	// AskSystemPrompt instructs the model to answer only from context.
	AskSystemPrompt = `You are a helpful assistant that writes concise, direct answers using ONLY the provided context from prior job applications.
- If the answer isn't in the context, say you don't have enough information.
- Prefer quoting specific details.
- Keep answers under 180 words unless asked otherwise.
- Cite the most relevant sources by file name when helpful.`

	// AskUserPrompt wraps the question and the context block.
	AskUserPrompt = "Question: " + PromptQuestion + "\n\nContext:\n" + PromptContext
)

// Placeholders substituted into the ask user prompt.
const (
	PromptQuestion = "{{question}}"
	PromptContext  = "{{context}}"
)
