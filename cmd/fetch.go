package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/cache"
)

// fetchCmd fetches the catalogs and stores a snapshot without rendering
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch provider catalogs and save a snapshot, without rendering",
	Long: `Fetch the full catalog of every configured provider from TMDB and save
it as a dated JSON snapshot. Render the book later with 'showbook render'
without touching the network again.`,
	RunE: runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	requireAPIKey()

	fetcher, err := newFetcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	cat, err := fetcher.BuildCatalog(ctx, providerList(), cfg.Fetch.Region)
	if err != nil {
		return exitIfUnauthorized(err)
	}

	store := cache.NewStore(cfg.Cache.Dir, logger)
	path, err := store.Save(cat, cfg.Fetch.Region, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d titles to %s\n", cat.TitleCount(), path)
	fmt.Printf("Render it with: showbook render %s\n", path)
	return nil
}
