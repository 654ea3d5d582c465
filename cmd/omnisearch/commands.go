package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch"
	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/devserver"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/seed"
	"github.com/poiesic/omnisearch/selection"
	"github.com/poiesic/omnisearch/session"
	"github.com/urfave/cli/v2"
)

// loadConfig reads --config if given and applies command flags over it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("policy") {
		cfg.Policy = c.String("policy")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("max-per-source") {
		cfg.MaxPerSource = c.Int("max-per-source")
	}
	if c.IsSet("debounce") {
		cfg.Debounce = c.Duration("debounce")
	}
	if c.IsSet("catalog") {
		cfg.CatalogPath = c.String("catalog")
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newAggregator(c *cli.Context, cfg *config.Config) (*omnisearch.Aggregator, error) {
	var opts []omnisearch.AggregatorOption
	if c.Bool("trace") {
		opts = append(opts, omnisearch.WithMonitor(&search.LogMonitor{Logger: slog.Default()}))
	}
	agg, err := omnisearch.NewAggregator(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}
	return agg, nil
}

func seedCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var listings []*core.Listing
	if path := c.String("fixtures"); path != "" {
		listings, err = devserver.LoadFixturesFile(path)
	} else {
		listings, err = devserver.DefaultListings()
	}
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	catalog, err := omnisearch.OpenCatalog(cfg.CatalogPath, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	seedConfig := &seed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	fmt.Fprintf(c.App.ErrWriter, "Catalog: %s\n", cfg.CatalogPath)
	if _, err := seed.NewSeeder(catalog.Repository(), seedConfig, c.App.ErrWriter).Run(c.Context, listings); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	path := cfg.CatalogPath
	if c.Bool("in-memory") {
		path = ""
	}
	catalog, err := omnisearch.OpenCatalog(path, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer catalog.Close()

	if path == "" {
		listings, err := devserver.DefaultListings()
		if err != nil {
			return err
		}
		if _, err := seed.NewSeeder(catalog.Repository(), nil, nil).Run(c.Context, listings); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}

	handler, err := catalog.NewServer()
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "err", err)
		}
	}()

	slog.Info("serving catalog", "addr", cfg.ListenAddr, "catalog", path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if core.NormalizeQuery(query) == "" {
		return fmt.Errorf("query is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	agg, err := newAggregator(c, cfg)
	if err != nil {
		return err
	}
	defer agg.Close()

	results := agg.Search(c.Context, query)

	if c.Bool("json") {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printResults(c, results, -1)
	return nil
}

func interactiveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	agg, err := newAggregator(c, cfg)
	if err != nil {
		return err
	}
	defer agg.Close()

	navigate := session.NavigatorFunc(func(url string) {
		fmt.Fprintf(c.App.Writer, "-> %s\n", url)
	})
	render := func(st session.State) {
		switch {
		case !st.Open:
			fmt.Fprintln(c.App.Writer, "[closed]")
		case st.Loading:
			fmt.Fprintf(c.App.Writer, "[searching %q]\n", st.Query)
		default:
			printResults(c, st.Results, st.SelectedIndex)
		}
	}

	s, err := agg.NewSession(navigate, session.WithListener(render))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	if err := s.Open(); err != nil {
		return err
	}

	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		line := scanner.Text()
		if err := handleLine(s, line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			fmt.Fprintln(c.App.ErrWriter, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	settle(ctx, s, cfg)
	cancel()
	<-done
	return nil
}

var errQuit = errors.New("quit")

// handleLine posts one line of interactive input to the session.
func handleLine(s *session.Session, line string) error {
	if !strings.HasPrefix(line, ":") {
		return s.Input(line)
	}
	switch cmd := strings.TrimPrefix(line, ":"); cmd {
	case "quit", "q":
		return errQuit
	case "close":
		return s.Close()
	default:
		key, err := selection.ParseKey(cmd)
		if err != nil {
			return err
		}
		return s.Key(key)
	}
}

// settle waits for a pending debounce and any in-flight search so scripted
// input sees its final results before exit.
func settle(ctx context.Context, s *session.Session, cfg *config.Config) {
	deadline := time.Now().Add(cfg.Debounce + cfg.Timeout)
	time.Sleep(cfg.Debounce + 10*time.Millisecond)
	for time.Now().Before(deadline) {
		st, err := s.Snapshot(ctx)
		if err != nil || !st.Loading {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func printResults(c *cli.Context, results []core.Result, selected int) {
	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No results")
		return
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	for i, r := range results {
		marker := " "
		if i == selected {
			marker = ">"
		}
		price := ""
		if r.Price != nil {
			price = fmt.Sprintf("%.2f", *r.Price)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, r.Type, r.Title, r.URL, price)
	}
	w.Flush()
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

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
