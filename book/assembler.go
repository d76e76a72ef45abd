package book

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/midwife-middleware/showbook/catalog"
)

// Variant selects the print target, which decides the footer format.
type Variant string

const (
	// VariantKDP numbers pages plainly; KDP rejects interiors whose page
	// numbers reference a total.
	VariantKDP Variant = "kdp"
	// VariantStandard prints "Page N of TOTAL" footers.
	VariantStandard Variant = "standard"
)

const (
	bookTitle    = "ShowBook"
	bookSubtitle = "The Complete Streaming Guide"
)

// Builder assembles the book from a catalog: title page, index, one section
// per provider in catalog order, colophon, then the even-leaf pad. It is
// the engine's page hooks, drawing the running header and footer.
type Builder struct {
	engine  *Engine
	variant Variant
	ceiling int
	edition time.Time
	logger  zerolog.Logger
}

// NewBuilder creates a builder for one document build. edition dates the
// running header and the title page; ceiling is the print-service page
// limit (0 disables the warning).
func NewBuilder(geom Geometry, variant Variant, ceiling int, edition time.Time, logger zerolog.Logger) *Builder {
	b := &Builder{
		variant: variant,
		ceiling: ceiling,
		edition: edition,
		logger:  logger,
	}
	b.engine = NewEngine(geom, b)
	return b
}

// Engine exposes the underlying layout engine.
func (b *Builder) Engine() *Engine { return b.engine }

// Build lays out the whole book. The index is computed from the same
// catalog object the sections render from, so its counts cannot drift.
func (b *Builder) Build(cat *catalog.Catalog) {
	b.titlePage()
	b.indexPage(cat)
	for _, p := range cat.Providers() {
		b.providerSection(p)
	}
	b.colophon()
	b.engine.Finish()
}

// WriteFile serializes the book. Exceeding the page ceiling is advisory:
// the document is still produced.
func (b *Builder) WriteFile(path string) error {
	if err := b.engine.Output(path); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	b.warnCeiling()
	b.logger.Info().
		Str("path", path).
		Int("pages", b.engine.PageCount()).
		Msg("Wrote book")
	return nil
}

// WriteTo serializes the book to w.
func (b *Builder) WriteTo(w io.Writer) error {
	if err := b.engine.OutputTo(w); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	b.warnCeiling()
	return nil
}

func (b *Builder) warnCeiling() {
	if n := b.engine.PageCount(); b.ceiling > 0 && n > b.ceiling {
		b.logger.Warn().
			Int("pages", n).
			Int("ceiling", b.ceiling).
			Msg("Page count exceeds the print-service ceiling; the file may be rejected for printing")
	}
}

// OnPageStart draws the running header. Suppressed on the title page.
func (b *Builder) OnPageStart(e *Engine, page int) {
	if page <= 1 {
		return
	}
	header := fmt.Sprintf("%s — %s — %s", bookTitle, bookSubtitle, b.edition.Format("January 2006"))
	e.PlaceAt(page, 8, 8, header, FontSpec{"Helvetica", "I", 8}, "C")
}

// OnPageEnd draws the running footer. The standard variant's total page
// count is a deferred alias resolved at serialization.
func (b *Builder) OnPageEnd(e *Engine, page int) {
	footer := fmt.Sprintf("Page %d", page)
	if b.variant == VariantStandard {
		footer = fmt.Sprintf("Page %d of {nb}", page)
	}
	e.PlaceAt(page, e.Geometry().TrimHeight-12, 6, footer, FontSpec{"Helvetica", "I", 8}, "C")
}

func (b *Builder) titlePage() {
	e := b.engine
	e.BeginPage()
	e.Advance(40)
	e.PlaceBlock(bookTitle, 18, FontSpec{"Helvetica", "B", 44}, "C")
	e.Advance(4)
	e.PlaceBlock(bookSubtitle, 10, FontSpec{"Helvetica", "", 16}, "C")
	e.Advance(16)
	e.PlaceBlock(
		"\"Crazy when you get a new streaming service and see all\n"+
			"these shows and movies you forgot existed. Like oh that's\n"+
			"where these were. They should make some kind of interface\n"+
			"where you could surf through all the different options at once.\n"+
			"Or maybe a book to tell you what's on where.\"\n"+
			"\n"+
			"— @deepfates",
		42, FontSpec{"Helvetica", "I", 10}, "C")
	e.Advance(10)
	e.PlaceBlock("So here's your book.", 7, FontSpec{"Helvetica", "", 11}, "C")
	e.PlaceBlock("You're welcome.", 7, FontSpec{"Helvetica", "", 11}, "C")
	e.Advance(20)
	e.PlaceBlock("Generated "+b.edition.Format("January 2, 2006"), 6, FontSpec{"Helvetica", "", 9}, "C")
	e.PlaceBlock("(Already out of date.)", 6, FontSpec{"Helvetica", "", 9}, "C")
}

func (b *Builder) indexPage(cat *catalog.Catalog) {
	e := b.engine
	e.BeginPage()
	e.PlaceBlock("Table of Contents", 14, FontSpec{"Helvetica", "B", 24}, "L")
	e.Advance(6)
	for _, p := range cat.Providers() {
		line := fmt.Sprintf("%s  —  %d movies, %d shows", p.Name, p.MovieCount(), p.ShowCount())
		e.PlaceBlock(line, 8, FontSpec{"Helvetica", "", 12}, "L")
	}
	e.Advance(10)
	e.PlaceBlock(fmt.Sprintf("Total: %d titles", cat.TitleCount()), 8, FontSpec{"Helvetica", "B", 12}, "L")
}

func (b *Builder) providerSection(p catalog.ProviderEntry) {
	e := b.engine
	e.BeginPage()
	e.PlaceBlock(p.Name, 14, FontSpec{"Helvetica", "B", 28}, "L")
	e.PlaceRule()
	e.Advance(6)
	b.titleList("Movies", p.Movies)
	e.Advance(5)
	b.titleList("Shows", p.Shows)
}

func (b *Builder) titleList(label string, titles []catalog.Title) {
	e := b.engine
	e.PlaceBlock(fmt.Sprintf("%s (%d)", label, len(titles)), 9, FontSpec{"Helvetica", "B", 14}, "L")
	e.Advance(2)
	for _, t := range titles {
		e.PlaceBlock("  "+t.String(), 4.8, FontSpec{"Helvetica", "", 9}, "L")
	}
}

func (b *Builder) colophon() {
	e := b.engine
	e.BeginPage()
	e.Advance(70)
	e.PlaceBlock("Colophon", 8, FontSpec{"Helvetica", "B", 13}, "C")
	e.Advance(4)
	e.PlaceBlock(
		"Generated by ShowBook\n"+
			"github.com/midwife-middleware/showbook\n"+
			"\n"+
			"Streaming data provided by TMDB (themoviedb.org).\n"+
			"This product uses the TMDB API but is not\n"+
			"endorsed or certified by TMDB.\n"+
			"\n"+
			"You could have just scrolled through the apps,\n"+
			"but no. You wanted a book.\n"+
			"Here's your book.",
		60, FontSpec{"Helvetica", "", 10}, "C")
}
