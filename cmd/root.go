package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/book"
	"github.com/midwife-middleware/showbook/catalog"
	"github.com/midwife-middleware/showbook/config"
	"github.com/midwife-middleware/showbook/filter"
	"github.com/midwife-middleware/showbook/tmdb"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	// Command flags
	apiKey     string
	region     string
	maxPages   int
	quick      bool
	outputPath string
	filterExpr string
)

// rootCmd represents the base command; running it with no subcommand
// fetches everything and renders the book.
var rootCmd = &cobra.Command{
	Use:   "showbook",
	Short: "Render every streaming catalog into a PDF book",
	Long: `showbook fetches the complete movie and show catalog of each configured
streaming provider from TMDB and renders them into one paginated PDF book:
title page, table of contents, a section per provider, colophon.

Because someone said they should make a book for that.`,
	PersistentPreRunE: initializeApp,
	RunE:              runBuild,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "TMDB API key (or set TMDB_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "watch region code (default: US)")
	rootCmd.PersistentFlags().IntVar(&maxPages, "max-pages", 0, "max result pages per query, 20 titles/page (default: 500, everything)")
	rootCmd.PersistentFlags().BoolVar(&quick, "quick", false, "quick mode: only 5 pages per query (~100 titles each)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output PDF path (default: showbook.pdf)")
	rootCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "title filter expression, e.g. 'Year >= 2000'")

	// Add subcommands
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and applies flag overrides
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if apiKey != "" {
		cfg.TMDB.APIKey = apiKey
	}
	if region != "" {
		cfg.Fetch.Region = region
	}
	if maxPages > 0 {
		cfg.Fetch.MaxPages = maxPages
	}
	if quick {
		cfg.Fetch.MaxPages = 5
	}
	if outputPath != "" {
		cfg.Book.Output = outputPath
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on real terminals
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// requireAPIKey terminates the process with guidance when no key is set.
func requireAPIKey() {
	if cfg.TMDB.APIKey != "" {
		return
	}
	fmt.Fprintln(os.Stderr, "Error: TMDB API key required.")
	fmt.Fprintln(os.Stderr, "  Set TMDB_API_KEY env var or pass --api-key KEY")
	fmt.Fprintln(os.Stderr, "  Get a free key at https://www.themoviedb.org/settings/api")
	os.Exit(1)
}

// exitIfUnauthorized terminates the process on credential failures; any
// other error is returned for cobra to report.
func exitIfUnauthorized(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tmdb.ErrUnauthorized) {
		fmt.Fprintln(os.Stderr, "Error: Invalid API key.")
		fmt.Fprintln(os.Stderr, "  Get a free key at https://www.themoviedb.org/settings/api")
		os.Exit(1)
	}
	return err
}

// newFetcher builds the TMDB client and fetcher from the loaded config
func newFetcher() (*tmdb.Fetcher, error) {
	client, err := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TMDB client: %w", err)
	}
	return tmdb.NewFetcher(client, cfg.Fetch.MaxPages, cfg.Fetch.RequestDelay, logger), nil
}

// providerList converts the configured priority list for the fetcher
func providerList() []tmdb.Provider {
	providers := make([]tmdb.Provider, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		providers = append(providers, tmdb.Provider{ID: p.ID, Name: p.Name})
	}
	return providers
}

// bookGeometry maps the book config onto the layout engine's geometry
func bookGeometry() book.Geometry {
	return book.Geometry{
		TrimWidth:    cfg.Book.TrimWidth,
		TrimHeight:   cfg.Book.TrimHeight,
		TopMargin:    cfg.Book.TopMargin,
		BottomMargin: cfg.Book.BottomMargin,
		OuterMargin:  cfg.Book.OuterMargin,
		GutterMargin: cfg.Book.GutterMargin,
	}
}

// applyFilter prunes the catalog when --filter was given
func applyFilter(cat *catalog.Catalog) (*catalog.Catalog, error) {
	if filterExpr == "" {
		return cat, nil
	}
	f, err := filter.Compile(filterExpr)
	if err != nil {
		return nil, err
	}
	before := cat.TitleCount()
	cat, err = filter.Apply(cat, f)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("filter", filterExpr).
		Int("kept", cat.TitleCount()).
		Int("dropped", before-cat.TitleCount()).
		Msg("Applied title filter")
	return cat, nil
}

// renderBook lays out and writes the PDF for a catalog
func renderBook(cat *catalog.Catalog, edition time.Time) error {
	builder := book.NewBuilder(
		bookGeometry(),
		book.Variant(cfg.Book.Variant),
		cfg.Book.PageCeiling,
		edition,
		logger,
	)
	builder.Build(cat)
	return builder.WriteFile(cfg.Book.Output)
}

func runBuild(cmd *cobra.Command, args []string) error {
	requireAPIKey()

	fetcher, err := newFetcher()
	if err != nil {
		return err
	}

	fmt.Println("ShowBook - The Complete Streaming Guide")
	fmt.Println(strings.Repeat("=", 42))
	switch {
	case quick:
		fmt.Println("  Mode: quick (--quick). Coward mode engaged.")
	case cfg.Fetch.MaxPages >= 500:
		fmt.Println("  Mode: EVERYTHING (this is going to take a while)")
		fmt.Printf("  Fetching up to %d pages per query across %d providers...\n",
			cfg.Fetch.MaxPages, len(cfg.Providers))
		fmt.Println("  Go make coffee. Or read a physical book. The irony is free.")
	default:
		fmt.Printf("  Mode: %d pages per query\n", cfg.Fetch.MaxPages)
	}

	ctx := context.Background()
	cat, err := fetcher.BuildCatalog(ctx, providerList(), cfg.Fetch.Region)
	if err != nil {
		return exitIfUnauthorized(err)
	}

	cat, err = applyFilter(cat)
	if err != nil {
		return err
	}

	fmt.Printf("\n  Generating PDF: %d movies + %d shows = %d titles\n",
		cat.MovieCount(), cat.ShowCount(), cat.TitleCount())

	if err := renderBook(cat, time.Now()); err != nil {
		return err
	}

	fmt.Printf("\n  Done! Your book is ready: %s\n", cfg.Book.Output)
	fmt.Println("  Now go read your PDF instead of just opening the apps.")
	return nil
}
