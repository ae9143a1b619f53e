// Copyright 2025 Poiesic Systems
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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/candidex"
	"github.com/poiesic/candidex/ai"
	"github.com/poiesic/candidex/answer"
	"github.com/poiesic/candidex/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "candidex",
		Usage: "Semantic candidate search and question answering",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before:   setupApp,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Normalize candidate profiles from a JSON export and rebuild the index",
				Action: ingestCommand,
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to a JSON array of candidate profile objects",
						Required: true,
					},
				),
			},
			{
				Name:   "refresh",
				Usage:  "Rebuild the index from stored candidates",
				Action: refreshCommand,
				Flags:  engineFlags(),
			},
			{
				Name:      "search",
				Usage:     "Rank candidates by similarity to a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a recruiter question about the candidate pool",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of candidates to consider",
						Value:   5,
					},
				),
			},
			{
				Name:      "remove",
				Usage:     "Remove a candidate by identity key",
				ArgsUsage: "<identity-key>",
				Action:    removeCommand,
				Flags:     engineFlags(),
			},
			{
				Name:   "stats",
				Usage:  "Show index and storage statistics",
				Action: statsCommand,
				Flags:  engineFlags(),
			},
			{
				Name:   "audit",
				Usage:  "Show recent audit trail entries",
				Action: auditCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of entries",
						Value:   20,
					},
				),
			},
			{
				Name:   "suggest",
				Usage:  "Show example search questions",
				Action: suggestCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags returns the flags shared by every command that opens storage
// and talks to the AI services.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "completion-host",
			Usage: "Text generation service host URL (defaults to embedding-host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-ada-002",
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Text generation model name",
			Value: "gpt-3.5-turbo",
		},
		&cli.StringFlag{
			Name:    "api-token",
			Usage:   "API token for the AI services",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
	}
}

// openEngine builds an Engine from command flags.
func openEngine(c *cli.Context) (*candidex.Engine, error) {
	completionHost := c.String("completion-host")
	if completionHost == "" {
		completionHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithCompletionHost(completionHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithAPIToken(c.String("api-token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := candidex.NewEngine(c.String("db"), candidex.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}
	return engine, nil
}

// loadProfiles reads a JSON array of raw field maps into candidate records.
func loadProfiles(filename string) ([]*core.CandidateRecord, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var rows []map[string]string
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	records := make([]*core.CandidateRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, core.FromMap(row))
	}
	return records, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := loadProfiles(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	kept, err := engine.Ingest(ctx, records)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d candidates (%d raw profiles)\n", kept, len(records))
	return nil
}

func refreshCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	stats, err := engine.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Index rebuilt over %d candidates\n", stats.TotalCandidates)
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	hits, err := engine.Search(ctx, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No candidates found.")
		return nil
	}

	for _, hit := range hits {
		fmt.Printf("%d. %s (%d%% match)\n", hit.Rank, hit.Record.Name, answer.MatchPercent(hit.SimilarityScore))
		if hit.Record.Headline != "" {
			fmt.Printf("   %s\n", hit.Record.Headline)
		}
		if len(hit.Record.SkillsTags) > 0 {
			fmt.Printf("   Skills: %s\n", strings.Join(hit.Record.SkillsTags, ", "))
		}
	}
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.Join(c.Args().Slice(), " ")
	if question == "" {
		return fmt.Errorf("question is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	response, err := engine.Ask(ctx, question, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("question answering failed: %w", err)
	}

	fmt.Println(response.AnswerText)

	if len(response.Justifications) > 0 {
		fmt.Println("\nWhy these candidates:")
		for i, justification := range response.Justifications {
			fmt.Printf("%d. %s\n", i+1, justification)
		}
	}

	if len(response.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, source := range response.Sources {
			fmt.Printf("- %s (%d%% match) %s\n", source.Name, answer.MatchPercent(source.SimilarityScore), source.ProfileURL)
		}
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()

	identityKey := c.Args().First()
	if identityKey == "" {
		return fmt.Errorf("identity key is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	removed, err := engine.Remove(ctx, identityKey)
	if err != nil {
		return fmt.Errorf("removal failed: %w", err)
	}

	if removed {
		fmt.Printf("Removed candidate %s\n", identityKey)
	} else {
		fmt.Printf("No candidate with identity key %s\n", identityKey)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Stored candidates:  %d\n", stats.StoredCandidates)
	fmt.Printf("Indexed candidates: %d\n", stats.TotalCandidates)
	fmt.Printf("Index built:        %v\n", stats.IndexBuilt)
	fmt.Printf("Dimension:          %d\n", stats.Dimension)
	return nil
}

func auditCommand(c *cli.Context) error {
	ctx := context.Background()

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	entries, err := engine.AuditTrail(ctx, c.Int("limit"))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Printf("%s  %-8s %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Action, entry.User)
		for key, value := range entry.Details {
			fmt.Printf(" %s=%s", key, value)
		}
		fmt.Println()
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	fmt.Println("Try asking:")
	for _, suggestion := range answer.SearchSuggestions() {
		fmt.Printf("- %s\n", suggestion)
	}
	return nil
}

func setupApp(c *cli.Context) error {
	// Optional .env for local development; absence is not an error
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "err", err)
	}

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
