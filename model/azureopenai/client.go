// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package azureopenai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poiesic/llmkit/core"
)

// APIError is an error response from the service, passed through to the
// caller with the vendor's message intact.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("azure openai: status %d", e.StatusCode)
	}
	return fmt.Sprintf("azure openai: status %d: %s", e.StatusCode, e.Message)
}

// client performs HTTP requests against Azure OpenAI or the OpenAI service.
type client struct {
	config     *Config
	httpClient *http.Client
	logger     *slog.Logger
}

func newClient(cfg *Config) *client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger.With("component", "azureopenai-client"),
	}
}

// endpointURL builds the request URL for the given operation. Azure routes
// through the deployment path with an api-version query parameter; the
// OpenAI service uses the flat v1 path.
func (c *client) endpointURL(operation string) string {
	if c.config.azure() {
		return fmt.Sprintf("%s/openai/deployments/%s/%s?api-version=%s",
			c.config.Endpoint,
			url.PathEscape(c.config.Deployment),
			operation,
			url.QueryEscape(c.config.APIVersion))
	}
	return c.config.Endpoint + "/" + operation
}

func (c *client) newRequest(ctx context.Context, endpoint string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.azure() {
		req.Header.Set("api-key", c.config.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.config.NonAzureAPIKey)
	}
	return req, nil
}

// postJSON sends a non-streaming request and decodes the JSON response.
// Transport errors, 429, and 5xx responses are retried with exponential
// backoff up to the configured budget.
func (c *client) postJSON(ctx context.Context, operation string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	endpoint := c.endpointURL(operation)

	data, err := retryWithBackoff(ctx, c.config.MaxRetries, func() ([]byte, error) {
		req, err := c.newRequest(ctx, endpoint, body)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, retryable(fmt.Errorf("send request: %w", err))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			apiErr := readAPIError(resp)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return nil, retryable(apiErr)
			}
			return nil, apiErr
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		c.logger.Error("request failed", "operation", operation, "err", err)
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// streamChat sends a streaming chat completion request and invokes fn for
// every server-sent-event chunk until the stream ends with [DONE]. Streaming
// requests are never retried.
func (c *client) streamChat(ctx context.Context, reqBody *chatCompletionRequest, fn func(chunk *chatCompletionResponse)) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, c.endpointURL("chat/completions"), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readAPIError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	// Deltas are small, but a full function-call argument payload can
	// arrive in one event.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			return nil
		}

		var chunk chatCompletionResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("decode chunk %q: %w", core.FirstChars(data, 120), err)
		}
		fn(&chunk)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	// Stream closed without [DONE]; treat the data received so far as the
	// complete response.
	return nil
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil || parsed.Error.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	apiErr.Message = parsed.Error.Message
	apiErr.Type = parsed.Error.Type
	apiErr.Code = parsed.Error.Code
	return apiErr
}

// retryableError marks an error as safe to retry.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func retryable(err error) error {
	return &retryableError{err: err}
}

// retryWithBackoff executes fn with exponential backoff, retrying only
// errors wrapped by retryable. Context cancellation stops retries.
func retryWithBackoff[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	backoff := 500 * time.Millisecond

	if maxRetries < 1 {
		maxRetries = 1
	}
	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		rerr, ok := err.(*retryableError)
		if !ok {
			return zero, err
		}
		lastErr = rerr.err

		if attempt < maxRetries-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	return zero, lastErr
}
