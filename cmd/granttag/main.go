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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/granttag"
	"github.com/poiesic/granttag/ai"
	"github.com/poiesic/granttag/api"
	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/metrics"
	"github.com/poiesic/granttag/retag"
	"github.com/poiesic/granttag/vocabulary"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: could not load .env: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "granttag",
		Usage: "Tag grant opportunities and search them by tag",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Storage backend (badger, json, memory)",
				Value:   string(granttag.StoreBadger),
				EnvVars: []string{"GRANTTAG_STORE"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the BadgerDB directory or JSON file",
				Value:   "granttag.db",
				EnvVars: []string{"GRANTTAG_DB"},
			},
			&cli.StringFlag{
				Name:    "vocabulary",
				Usage:   "YAML file replacing the built-in tag vocabulary",
				EnvVars: []string{"GRANTTAG_VOCABULARY"},
			},
			&cli.BoolFlag{
				Name:    "use-llm",
				Usage:   "Refine keyword tags with a chat model",
				EnvVars: []string{"USE_LLM"},
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "API key for the chat model service",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:    "openai-model",
				Usage:   "Chat model used for refinement",
				Value:   "gpt-4o-mini",
				EnvVars: []string{"OPENAI_MODEL"},
			},
			&cli.StringFlag{
				Name:    "openai-base-url",
				Usage:   "OpenAI-compatible service URL",
				Value:   "https://api.openai.com/v1",
				EnvVars: []string{"OPENAI_BASE_URL"},
			},
			&cli.DurationFlag{
				Name:  "llm-timeout",
				Usage: "Timeout for one refinement call",
				Value: 30 * time.Second,
			},
			&cli.IntFlag{
				Name:  "pool-size",
				Usage: "Number of grants tagged concurrently (0 for default)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the grant API over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Interface to listen on",
						Value: "0.0.0.0",
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to listen on",
						Value:   8000,
						EnvVars: []string{"PORT"},
					},
					&cli.StringFlag{
						Name:    "allowed-origins",
						Usage:   "CORS origins: * or a comma-separated list",
						Value:   "*",
						EnvVars: []string{"ALLOWED_ORIGINS"},
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "Expose Prometheus metrics at /metrics",
						Value: true,
					},
				},
			},
			{
				Name:   "tag",
				Usage:  "Print the tags for one grant without storing it",
				Action: tagCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Grant name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "description",
						Usage:    "Grant description",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "no-refine",
						Usage: "Print keyword tags only, skipping LLM refinement",
					},
				},
			},
			{
				Name:      "seed",
				Usage:     "Replace the stored grants with a tagged JSON seed file",
				ArgsUsage: "<seed.json>",
				Action:    seedCommand,
			},
			{
				Name:   "search",
				Usage:  "Search stored grants by tag or free-text query",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "tags",
						Aliases: []string{"t"},
						Usage:   "Comma-separated tags",
					},
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text query resolved through synonyms",
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Combine tags with all or any",
						Value:   string(core.SearchModeAll),
					},
				},
			},
			{
				Name:   "retag",
				Usage:  "Re-run tagging over every stored grant",
				Action: retagCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of grants to process in each batch",
						Value: retag.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N grants",
						Value: 100,
					},
				},
			},
			{
				Name:   "tags",
				Usage:  "List the tag vocabulary",
				Action: tagsCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "keywords",
						Usage: "Print the vocabulary and keyword rules as a YAML vocabulary file",
					},
				},
			},
		},
	}
}

// catalogConfig builds the catalog configuration from the global flags.
func catalogConfig(c *cli.Context) *granttag.Config {
	return &granttag.Config{
		Store:          granttag.StoreKind(strings.ToLower(c.String("store"))),
		Path:           c.String("db"),
		VocabularyFile: c.String("vocabulary"),
		PoolSize:       c.Int("pool-size"),
		AI: ai.NewConfig(
			ai.WithEnabled(c.Bool("use-llm")),
			ai.WithAPIKey(c.String("openai-api-key")),
			ai.WithModel(c.String("openai-model")),
			ai.WithHost(c.String("openai-base-url")),
			ai.WithTimeout(c.Duration("llm-timeout")),
		),
	}
}

func openCatalog(c *cli.Context, opts ...granttag.Option) (*granttag.Catalog, error) {
	cfg := catalogConfig(c)
	if cfg.AI.Enabled {
		if err := cfg.AI.Validate(); err != nil {
			return nil, fmt.Errorf("invalid AI configuration: %w", err)
		}
	}

	catalog, err := granttag.Open(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var catalogOpts []granttag.Option
	var serverOpts []api.Option
	if c.Bool("metrics") {
		m := metrics.New()
		catalogOpts = append(catalogOpts, granttag.WithMetrics(m))
		serverOpts = append(serverOpts, api.WithMetrics(m))
	}
	serverOpts = append(serverOpts, api.WithAllowedOrigins(c.String("allowed-origins")))

	catalog, err := openCatalog(c, catalogOpts...)
	if err != nil {
		return err
	}
	defer catalog.Close()

	// Warm the index so the first request does not pay for the load.
	if _, err := catalog.Reindex(ctx); err != nil {
		return fmt.Errorf("failed to load grants: %w", err)
	}

	app, err := api.NewApp(catalog, serverOpts...)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(c.String("host"), strconv.Itoa(c.Int("port")))
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr, "grants", catalog.Len())
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func tagCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	name := c.String("name")
	description := c.String("description")
	if err := core.ValidateGrantInput(&core.GrantInput{Name: name, Description: description}); err != nil {
		return err
	}

	var tags []string
	if c.Bool("no-refine") {
		tags = catalog.Match(name, description)
	} else {
		tags = catalog.Tag(c.Context, name, description)
	}
	_, err = fmt.Fprintln(c.App.Writer, strings.Join(tags, ", "))
	return err
}

func seedCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("seed file is required")
	}
	out := c.App.Writer

	inputs, err := loadSeedFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Loading seed data from %s\n", path)
	fmt.Fprintf(out, "Loaded %d grants from seed file\n", len(inputs))

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	fmt.Fprintln(out, "Tagging grants...")
	grants, err := catalog.Replace(c.Context, inputs)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	for _, g := range grants {
		fmt.Fprintf(out, "   • %s... → %d tags\n", truncate(g.Name, 50), len(g.Tags))
	}

	fmt.Fprintf(out, "\nSaved %d grants to storage\n", len(grants))
	fmt.Fprintln(out, "Seeding complete!")
	writeSeedSummary(out, grants)
	return nil
}

func loadSeedFile(path string) ([]core.GrantInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed file not found: %w", err)
	}
	var inputs []core.GrantInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}
	return inputs, nil
}

func writeSeedSummary(w io.Writer, grants []*core.Grant) {
	unique := make(map[string]struct{})
	total := 0
	for _, g := range grants {
		for _, tag := range g.Tags {
			unique[tag] = struct{}{}
		}
		total += len(g.Tags)
	}

	average := 0.0
	if len(grants) > 0 {
		average = float64(total) / float64(len(grants))
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "   • Total grants: %d\n", len(grants))
	fmt.Fprintf(w, "   • Unique tags used: %d\n", len(unique))
	fmt.Fprintf(w, "   • Average tags per grant: %.1f\n", average)
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func searchCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	var tags []string
	if param := strings.TrimSpace(c.String("tags")); param != "" {
		tags = strings.Split(param, ",")
	}

	var result any
	if c.IsSet("query") || c.IsSet("mode") {
		result, err = catalog.AdvancedSearch(c.Context, c.String("query"), tags, c.String("mode"))
	} else {
		result, err = catalog.Search(c.Context, tags)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func retagCommand(c *cli.Context) error {
	config := &retag.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	fmt.Fprintf(c.App.ErrWriter, "Store: %s (%s)\n", c.String("db"), c.String("store"))
	fmt.Fprintf(c.App.ErrWriter, "Vocabulary: %d tags\n", catalog.Vocabulary().Len())
	fmt.Fprintln(c.App.ErrWriter)

	if _, err := catalog.Retag(c.Context, config, c.App.ErrWriter); err != nil {
		return fmt.Errorf("retagging failed: %w", err)
	}
	return nil
}

func tagsCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	if c.Bool("keywords") {
		return vocabulary.Dump(c.App.Writer, catalog.Vocabulary())
	}
	for _, tag := range catalog.Tags() {
		fmt.Fprintln(c.App.Writer, tag)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
