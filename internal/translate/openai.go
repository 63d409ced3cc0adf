// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/olegiv/folio-go/internal/model"
)

const openAIModel = openai.ChatModelGPT4oMini

// OpenAIClient translates via the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient creates an OpenAI-backed translation client. baseURL may be
// empty to use the default API endpoint; a non-empty value allows pointing at
// an OpenAI-compatible gateway.
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = model.DefaultTranslationTimeout * time.Second
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}
}

// Provider returns the provider name recorded on translation records.
func (c *OpenAIClient) Provider() string { return model.ProviderOpenAI }

// Translate translates text from source to target. Empty text returns empty
// immediately without a network call.
func (c *OpenAIClient) Translate(ctx context.Context, text, source, target string, format Format) (string, error) {
	if text == "" {
		return "", nil
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(translationPrompt(source, target, format)),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", &Error{Provider: c.Provider(), Message: "chat completion failed", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Provider: c.Provider(), Message: "no choices returned"}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func translationPrompt(source, target string, format Format) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a professional translator. Translate the user's text from %q to %q.\n", source, target)
	if format == FormatHTML {
		b.WriteString("The text is HTML: preserve all tags, attributes, and entity references exactly; translate only the human-readable content.\n")
	}
	b.WriteString("Do not translate proper nouns, URLs, or code. Output only the translated text with no explanations or extra formatting.")
	return b.String()
}
