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

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/llmkit"
	"github.com/poiesic/llmkit/codec"
	"github.com/poiesic/llmkit/core"
	"github.com/poiesic/llmkit/document"
	"github.com/poiesic/llmkit/model"
	"github.com/poiesic/llmkit/model/azureopenai"
	"github.com/poiesic/llmkit/model/compat"
	"github.com/poiesic/llmkit/model/ollama"
	"github.com/poiesic/llmkit/retrieval"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "llmkit",
		Usage: "Chat with language models and search ingested documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "chat",
				Usage:     "Send a prompt to a chat model and stream the reply",
				ArgsUsage: "<prompt>",
				Action:    chatCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Chat provider (azure, openai, ollama, compat)",
						Value: "compat",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Model or deployment name",
					},
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Server URL (azure endpoint, ollama address, or compat host)",
						EnvVars: []string{"LLMKIT_HOST"},
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the provider",
						EnvVars: []string{"LLMKIT_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "system",
						Usage: "System message prepended to the conversation",
					},
					&cli.Float64Flag{
						Name:  "temperature",
						Usage: "Sampling temperature",
						Value: 0.7,
					},
				},
			},
			{
				Name:      "index",
				Usage:     "Ingest files or directories into a searchable index",
				ArgsUsage: "<path>...",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the index database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Embedding server host URL",
						EnvVars: []string{"LLMKIT_HOST"},
						Value:   "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "glob",
						Usage: "Only ingest directory entries matching this pattern",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search an index for relevant segments",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the index database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "host",
						Usage:   "Embedding server host URL",
						EnvVars: []string{"LLMKIT_HOST"},
						Value:   "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum relevance score in [0, 1]",
						Value: 0.5,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit results as JSON",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func chatCommand(c *cli.Context) error {
	prompt := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if prompt == "" {
		return fmt.Errorf("prompt is required")
	}

	chatModel, err := buildChatModel(
		c.String("provider"),
		c.String("host"),
		c.String("api-key"),
		c.String("model"),
		c.Float64("temperature"),
	)
	if err != nil {
		return err
	}

	var messages []core.Message
	if system := c.String("system"); system != "" {
		messages = append(messages, core.SystemMessage(system))
	}
	messages = append(messages, core.UserMessage(prompt))

	var streamErr error
	handler := &model.HandlerFuncs{
		TokenFunc: func(token string) {
			fmt.Print(token)
		},
		CompleteFunc: func(response *core.Response) {
			fmt.Println()
			if usage := response.TokenUsage; usage.TotalTokens > 0 {
				fmt.Fprintf(os.Stderr, "tokens: %d in, %d out\n", usage.InputTokens, usage.OutputTokens)
			}
		},
		ErrorFunc: func(err error) {
			streamErr = err
		},
	}

	chatModel.GenerateStream(c.Context, messages, handler)
	return streamErr
}

// buildChatModel selects and configures the provider for the chat command.
func buildChatModel(provider, host, apiKey, modelName string, temperature float64) (model.StreamingChatModel, error) {
	switch provider {
	case "azure":
		opts := []azureopenai.Option{
			azureopenai.WithEndpoint(host),
			azureopenai.WithAPIKey(apiKey),
			azureopenai.WithTemperature(temperature),
		}
		if modelName != "" {
			opts = append(opts, azureopenai.WithDeployment(modelName))
		}
		return azureopenai.NewChatModel(opts...)
	case "openai":
		opts := []azureopenai.Option{
			azureopenai.WithNonAzureAPIKey(apiKey),
			azureopenai.WithTemperature(temperature),
		}
		if modelName != "" {
			opts = append(opts, azureopenai.WithDeployment(modelName))
		}
		return azureopenai.NewChatModel(opts...)
	case "ollama":
		opts := []ollama.Option{
			ollama.WithModel(modelName),
			ollama.WithTemperature(temperature),
		}
		if host != "" {
			opts = append(opts, ollama.WithBaseURL(host))
		}
		return ollama.NewChatModel(opts...)
	case "compat":
		cfgOpts := []compat.ConfigOption{compat.WithTemperature(temperature)}
		if host != "" {
			cfgOpts = append(cfgOpts, compat.WithHost(host))
		}
		if apiKey != "" {
			cfgOpts = append(cfgOpts, compat.WithAPIKey(apiKey))
		}
		if modelName != "" {
			cfgOpts = append(cfgOpts, compat.WithChatModel(modelName))
		}
		return compat.NewChatModel(compat.NewConfig(cfgOpts...))
	default:
		return nil, fmt.Errorf("unknown provider %q: must be one of azure, openai, ollama, compat", provider)
	}
}

func indexCommand(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one path is required")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	var documents []core.Document
	for _, path := range c.Args().Slice() {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			docs, err := document.LoadDirectory(c.Context, path, c.String("glob"))
			if err != nil {
				return err
			}
			documents = append(documents, docs...)
		} else {
			doc, err := document.LoadText(path)
			if err != nil {
				return err
			}
			documents = append(documents, doc)
		}
	}

	stored, err := ix.Ingest(c.Context, documents...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "indexed %d segments from %d documents\n", stored, len(documents))
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	ix, err := openIndex(c,
		llmkit.WithRetrievalOptions(
			retrieval.WithMaxResults(c.Int("max-results")),
			retrieval.WithMinScore(c.Float64("min-score")),
		))
	if err != nil {
		return err
	}
	defer ix.Close()

	results, err := ix.Search(c.Context, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		return codec.Write(os.Stdout, results)
	}
	for i, result := range results {
		fmt.Printf("%d: [%0.3f] %s\n", i+1, result.Score, core.FirstChars(result.Text, 120))
		if source := result.Metadata[document.MetaSource]; source != "" {
			fmt.Printf("   %s\n", source)
		}
	}
	return nil
}

func openIndex(c *cli.Context, extra ...llmkit.IndexOption) (*llmkit.Index, error) {
	cfg := compat.NewConfig(
		compat.WithHost(c.String("host")),
		compat.WithEmbeddingModel(c.String("embedding-model")),
	)
	opts := append([]llmkit.IndexOption{llmkit.WithCompatConfig(cfg)}, extra...)
	return llmkit.NewIndex(c.String("db"), opts...)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
