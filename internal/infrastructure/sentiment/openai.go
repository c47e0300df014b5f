package sentiment

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

const classifyPrompt = "You classify the sentiment of news article text. " +
	"Respond with exactly one word: Positive, Negative, or Neutral."

// OpenAI classifies text through a chat-completion model.
type OpenAI struct {
	client *openai.Client
	model  string
}

var _ ports.SentimentClassifier = (*OpenAI)(nil)

// NewOpenAI builds a classifier from an API key and model name.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Classify asks the model for a single-word label and parses it.
func (o *OpenAI) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: truncate(text, maxClassifyChars)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return parseLabel(resp.Choices[0].Message.Content)
}
