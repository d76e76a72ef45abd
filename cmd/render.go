package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/midwife-middleware/showbook/cache"
)

// renderCmd renders a book from a stored snapshot. No API key needed.
var renderCmd = &cobra.Command{
	Use:   "render <snapshot>",
	Short: "Render the book from a saved catalog snapshot",
	Long: `Render the PDF book from a snapshot produced by 'showbook fetch',
without any network access. The snapshot's fetch date becomes the book's
edition date.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output PDF path (default: showbook.pdf)")
	renderCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "title filter expression, e.g. 'Year >= 2000'")
}

func runRender(cmd *cobra.Command, args []string) error {
	if outputPath != "" {
		cfg.Book.Output = outputPath
	}

	store := cache.NewStore(cfg.Cache.Dir, logger)
	snap, err := store.Load(args[0])
	if err != nil {
		return err
	}

	cat, err := applyFilter(snap.Catalog)
	if err != nil {
		return err
	}

	fmt.Printf("Generating PDF: %d movies + %d shows = %d titles\n",
		cat.MovieCount(), cat.ShowCount(), cat.TitleCount())

	if err := renderBook(cat, snap.FetchedAt); err != nil {
		return err
	}

	fmt.Printf("Done! Your book is ready: %s\n", cfg.Book.Output)
	return nil
}
