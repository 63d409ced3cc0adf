// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

// Format tells the provider how to treat the input text.
type Format string

// Field formats
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// Client translates a single string between two language codes. One call is
// one network request; there are no retries at this layer — a failure
// surfaces immediately to the caller.
type Client interface {
	Translate(ctx context.Context, text, source, target string, format Format) (string, error)
	Provider() string
}

// LibreTranslateClient talks to a LibreTranslate-compatible HTTP endpoint.
type LibreTranslateClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslateClient creates a client for the given endpoint. The
// timeout bounds each individual translate call.
func NewLibreTranslateClient(baseURL, apiKey string, timeout time.Duration) *LibreTranslateClient {
	if timeout <= 0 {
		timeout = model.DefaultTranslationTimeout * time.Second
	}
	return &LibreTranslateClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Provider returns the provider name recorded on translation records.
func (c *LibreTranslateClient) Provider() string { return model.ProviderLibreTranslate }

// Translate translates text from source to target. Empty text returns empty
// immediately without a network call.
func (c *LibreTranslateClient) Translate(ctx context.Context, text, source, target string, format Format) (string, error) {
	if text == "" {
		return "", nil
	}

	form := url.Values{
		"q":      {text},
		"source": {source},
		"target": {target},
		"format": {string(format)},
	}
	if c.apiKey != "" {
		form.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return "", &Error{Provider: c.Provider(), Message: "building request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &Error{Provider: c.Provider(), Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &Error{Provider: c.Provider(), Message: "reading response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Provider: c.Provider(),
			Message:  fmt.Sprintf("status %d: %s", resp.StatusCode, snippet(body)),
		}
	}

	var result struct {
		TranslatedText *string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &Error{Provider: c.Provider(), Message: "malformed response", Err: err}
	}
	if result.TranslatedText == nil {
		return "", &Error{Provider: c.Provider(), Message: "response missing translatedText"}
	}
	return *result.TranslatedText, nil
}

// snippet bounds a response body for inclusion in error messages.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
