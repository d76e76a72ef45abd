// Package filter compiles expr-language expressions that prune titles
// before rendering. The environment exposes Name (string), Year (int, 0
// when unknown) and contains(s, substr) for case-insensitive matching.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/midwife-middleware/showbook/catalog"
)

// Filter decides whether a title stays in the book
type Filter interface {
	Match(t catalog.Title) (bool, error)
}

// exprFilter implements Filter using a compiled expr program
type exprFilter struct {
	expression string
	program    *vm.Program
}

// Compile compiles a filter expression once for the run
func Compile(expression string) (Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	return &exprFilter{expression: expression, program: program}, nil
}

// Match evaluates the expression against one title
func (f *exprFilter) Match(t catalog.Title) (bool, error) {
	env := map[string]interface{}{
		"Name": t.Name,
		"Year": yearInt(t.Year),
		"contains": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter evaluation failed for %q: %w", t.Name, err)
	}

	keep, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression %q did not evaluate to a boolean", f.expression)
	}
	return keep, nil
}

// Apply returns a filtered copy of the catalog. Provider order is
// preserved; only the title lists shrink.
func Apply(cat *catalog.Catalog, f Filter) (*catalog.Catalog, error) {
	out := catalog.New()
	for _, p := range cat.Providers() {
		movies, err := keepMatching(p.Movies, f)
		if err != nil {
			return nil, err
		}
		shows, err := keepMatching(p.Shows, f)
		if err != nil {
			return nil, err
		}
		out.Append(catalog.ProviderEntry{Name: p.Name, Movies: movies, Shows: shows})
	}
	return out, nil
}

func keepMatching(titles []catalog.Title, f Filter) ([]catalog.Title, error) {
	kept := make([]catalog.Title, 0, len(titles))
	for _, t := range titles {
		ok, err := f.Match(t)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

func yearInt(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}
