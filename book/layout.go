// Package book renders a catalog into a paginated PDF. The layout engine
// owns every page-break decision: fpdf's automatic page breaking is
// disabled and content is placed against an explicit vertical cursor, so a
// block either fits entirely on the current page or forces a new one.
package book

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Geometry describes the physical page. All dimensions are millimeters.
// The gutter margin sits on the binding edge: left on odd (recto) pages,
// right on even (verso) pages.
type Geometry struct {
	TrimWidth    float64
	TrimHeight   float64
	TopMargin    float64
	BottomMargin float64
	OuterMargin  float64
	GutterMargin float64
}

// ContentBottom is the boundary below which no content may be placed. It is
// derived from the trim height, never a hardcoded threshold.
func (g Geometry) ContentBottom() float64 {
	return g.TrimHeight - g.BottomMargin
}

// MarginsFor returns the left and right margins for a page number. Margins
// are a pure function of page parity: pages N and N+2 always match.
func (g Geometry) MarginsFor(page int) (left, right float64) {
	if page%2 == 1 {
		return g.GutterMargin, g.OuterMargin
	}
	return g.OuterMargin, g.GutterMargin
}

// ContentWidth is the writable width between the margins. The margin pair
// only mirrors between parities, so the width is the same on every page.
func (g Geometry) ContentWidth() float64 {
	return g.TrimWidth - g.OuterMargin - g.GutterMargin
}

// FontSpec selects one of the PDF core fonts
type FontSpec struct {
	Family string
	Style  string
	Size   float64
}

// PageHooks receives page transitions. OnPageStart runs after a page is
// opened (the running header), OnPageEnd when it is closed (the running
// footer). The page argument is the 1-based number of the page the hook is
// drawing on.
type PageHooks interface {
	OnPageStart(e *Engine, page int)
	OnPageEnd(e *Engine, page int)
}

// Engine lays a linear stream of text blocks onto fixed-size pages. It
// holds exclusive mutable state (current page, cursor, margins) for the
// lifetime of one document build and none of its operations can fail: when
// content would cross the bottom boundary it breaks the page instead.
type Engine struct {
	pdf      *fpdf.Fpdf
	geom     Geometry
	tr       func(string) string
	hooks    PageHooks
	page     int
	cursor   float64
	left     float64
	right    float64
	finished bool
}

// NewEngine creates an engine for the given geometry. hooks may be nil.
func NewEngine(geom Geometry, hooks PageHooks) *Engine {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geom.TrimWidth, Ht: geom.TrimHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	e := &Engine{
		pdf:   pdf,
		geom:  geom,
		hooks: hooks,
	}
	// Core fonts are cp1252 only; the translator replaces anything outside
	e.tr = pdf.UnicodeTranslatorFromDescriptor("")

	// fpdf fires the header after a page opens and the footer while the
	// previous page is still current, so PageNo() is the right number in
	// both callbacks.
	pdf.SetHeaderFunc(func() {
		if e.hooks != nil {
			e.hooks.OnPageStart(e, e.pdf.PageNo())
		}
	})
	pdf.SetFooterFunc(func() {
		if e.hooks != nil {
			e.hooks.OnPageEnd(e, e.pdf.PageNo())
		}
	})

	return e
}

// Geometry returns the page geometry the engine was built with.
func (e *Engine) Geometry() Geometry { return e.geom }

// Page returns the current 1-based page number, 0 before the first page.
func (e *Engine) Page() int { return e.page }

// PageCount returns the number of pages created so far.
func (e *Engine) PageCount() int { return e.pdf.PageCount() }

// Cursor returns the current vertical position.
func (e *Engine) Cursor() float64 { return e.cursor }

// BeginPage opens the next page: assigns the next page number, recomputes
// the margin pair for that number's parity and resets the cursor to the top
// margin. Never cached between pages; parity decides fresh every time.
func (e *Engine) BeginPage() {
	if e.finished {
		return
	}
	e.page++
	e.left, e.right = e.geom.MarginsFor(e.page)
	e.pdf.SetLeftMargin(e.left)
	e.pdf.SetRightMargin(e.right)
	e.pdf.SetTopMargin(e.geom.TopMargin)
	e.pdf.AddPage()
	e.cursor = e.geom.TopMargin
}

// PlaceBlock writes a block of the given total height at the cursor and
// advances the cursor past it. A block that would cross the content bottom
// starts a new page first; blocks never split across pages. Multi-line text
// is split evenly over the block height.
func (e *Engine) PlaceBlock(text string, height float64, font FontSpec, align string) {
	if e.finished {
		return
	}
	if e.page == 0 || e.cursor+height > e.geom.ContentBottom() {
		e.BeginPage()
	}

	e.pdf.SetFont(font.Family, font.Style, font.Size)
	e.pdf.SetXY(e.left, e.cursor)

	if lines := strings.Count(text, "\n") + 1; lines > 1 {
		e.pdf.MultiCell(e.geom.ContentWidth(), height/float64(lines), e.tr(text), "", align, false)
	} else {
		e.pdf.CellFormat(e.geom.ContentWidth(), height, e.tr(text), "", 0, align, false, 0, "")
	}

	e.cursor += height
}

// PlaceRule draws a horizontal divider across the content width at the
// cursor. The cursor does not advance; callers space with Advance.
func (e *Engine) PlaceRule() {
	if e.finished {
		return
	}
	if e.page == 0 {
		e.BeginPage()
	}
	e.pdf.Line(e.left, e.cursor, e.geom.TrimWidth-e.right, e.cursor)
}

// Advance moves the cursor down without placing content or breaking pages.
func (e *Engine) Advance(height float64) {
	if e.finished {
		return
	}
	e.cursor += height
}

// PlaceAt writes a single line at an absolute vertical position, outside
// cursor control. Margins are derived from the page number passed in, so
// footer hooks firing during a page transition still use the parity of the
// page they draw on.
func (e *Engine) PlaceAt(page int, y, height float64, text string, font FontSpec, align string) {
	left, right := e.geom.MarginsFor(page)
	e.pdf.SetFont(font.Family, font.Style, font.Size)
	e.pdf.SetXY(left, y)
	e.pdf.CellFormat(e.geom.TrimWidth-left-right, height, e.tr(text), "", 0, align, false, 0, "")
}

// Finish closes the layout. Printed books need an even leaf count, so an
// odd final page count gets one blank page appended. Calling Finish again
// is a no-op, and placement operations after it do nothing.
func (e *Engine) Finish() {
	if e.finished {
		return
	}
	if e.page%2 == 1 {
		e.BeginPage()
	}
	e.finished = true
}

// Output serializes the document. The total-page alias ({nb}) resolves
// here, once every footer has been drawn.
func (e *Engine) Output(path string) error {
	return e.pdf.OutputFileAndClose(path)
}

// OutputTo serializes the document to w.
func (e *Engine) OutputTo(w io.Writer) error {
	return e.pdf.Output(w)
}
