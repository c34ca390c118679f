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

package ollama

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is where a locally installed Ollama listens.
	DefaultBaseURL = "http://localhost:11434"

	defaultTimeout = 120 * time.Second
)

// Config holds configuration for Ollama models.
type Config struct {
	// BaseURL is the Ollama server address. Default: DefaultBaseURL.
	BaseURL string

	// Model names the model to run, e.g. "llama3" or "nomic-embed-text".
	Model string

	// Sampling and length parameters, passed through as runner options.
	// Nil fields are omitted so the model file's defaults apply.
	Temperature *float64
	TopK        *int
	TopP        *float64
	NumPredict  *int
	Stop        []string

	// Timeout bounds each HTTP request, including the full duration of a
	// streamed response. Default: 120s.
	Timeout time.Duration

	// HTTPClient overrides the HTTP client used for requests.
	HTTPClient *http.Client

	// Logger overrides the default slog logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithBaseURL sets the Ollama server address.
func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(c *Config) {
		c.Temperature = &temperature
	}
}

// WithTopK sets the top-k sampling parameter.
func WithTopK(topK int) Option {
	return func(c *Config) {
		c.TopK = &topK
	}
}

// WithTopP sets the nucleus sampling parameter.
func WithTopP(topP float64) Option {
	return func(c *Config) {
		c.TopP = &topP
	}
}

// WithNumPredict caps the number of generated tokens.
func WithNumPredict(numPredict int) Option {
	return func(c *Config) {
		c.NumPredict = &numPredict
	}
}

// WithStop sets stop sequences.
func WithStop(stop ...string) Option {
	return func(c *Config) {
		c.Stop = stop
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// NewConfig creates a Config with defaults and applies the given options.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		BaseURL: DefaultBaseURL,
		Timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("ollama config: BaseURL is required")
	}
	if c.Model == "" {
		return errors.New("ollama config: Model is required")
	}
	return nil
}
