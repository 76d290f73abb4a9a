// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matching

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIRanker is the production Ranker, backed by a chat-completion
// model. Responses are returned raw; parsing and validation stay in
// the engine so the fallback path covers malformed model output too.
type OpenAIRanker struct {
	client *openai.Client
	model  string
}

func NewOpenAIRanker(apiKey, model string) *OpenAIRanker {
	return &OpenAIRanker{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (r *OpenAIRanker) Rank(ctx context.Context, system, user string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               r.model,
		MaxCompletionTokens: 256,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
