package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/tmdb"
)

// providersCmd lists the watch providers TMDB knows for a region
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available streaming providers for the region",
	Long: `Query TMDB for the watch providers available in the configured region
and print them sorted by name. Providers included in the book by default
are flagged.`,
	RunE: runProviders,
}

func runProviders(cmd *cobra.Command, args []string) error {
	requireAPIKey()

	client, err := tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	providers, err := client.WatchProviders(ctx, tmdb.MediaTypeMovie, cfg.Fetch.Region)
	if err != nil {
		return exitIfUnauthorized(err)
	}

	sort.Slice(providers, func(i, j int) bool {
		return providers[i].DisplayName < providers[j].DisplayName
	})

	included := make(map[int64]bool, len(cfg.Providers))
	for _, p := range cfg.Providers {
		included[p.ID] = true
	}

	fmt.Printf("\nAvailable streaming providers in %s:\n\n", cfg.Fetch.Region)
	fmt.Printf("  %6s  Provider\n", "ID")
	fmt.Printf("  %6s  --------\n", "--")
	for _, p := range providers {
		marker := ""
		if included[p.ID] {
			marker = " <--"
		}
		fmt.Printf("  %6d  %s%s\n", p.ID, p.DisplayName, marker)
	}
	fmt.Println("\n  Providers marked with <-- are included by default.")
	return nil
}
