// Package cache persists fetched catalogs as JSON snapshots so a book can
// be re-rendered without touching the TMDB API again. A snapshot records
// the fetch timestamp, the watch region and the full provider mapping; the
// providers object keeps catalog order, so a loaded snapshot reproduces the
// exact structure the layout engine consumes.
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/midwife-middleware/showbook/catalog"
)

// Snapshot is a persisted catalog with its fetch metadata
type Snapshot struct {
	FetchedAt time.Time
	Region    string
	Catalog   *catalog.Catalog
}

// Store reads and writes catalog snapshots in a directory
type Store struct {
	dir    string
	logger zerolog.Logger
}

// NewStore creates a snapshot store rooted at dir
func NewStore(dir string, logger zerolog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// sections is the per-provider value in the providers object
type sections struct {
	Movies []catalog.Title `json:"Movies"`
	Shows  []catalog.Title `json:"Shows"`
}

// Save writes a region- and date-stamped snapshot and returns its path
func (s *Store) Save(cat *catalog.Catalog, region string, fetchedAt time.Time) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	providers, err := encodeProviders(cat)
	if err != nil {
		return "", err
	}

	record := struct {
		FetchedAt string          `json:"fetched_at"`
		Region    string          `json:"region"`
		Providers json.RawMessage `json:"providers"`
	}{
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
		Region:    region,
		Providers: providers,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("showbook-%s-%s.json", region, fetchedAt.Format("2006-01-02"))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("providers", cat.Len()).
		Int("titles", cat.TitleCount()).
		Msg("Saved catalog snapshot")

	return path, nil
}

// encodeProviders marshals the providers object by hand so member order is
// catalog order; encoding/json would sort map keys.
func encodeProviders(cat *catalog.Catalog) (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range cat.Providers() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode provider name: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(sections{
			Movies: nonNil(e.Movies),
			Shows:  nonNil(e.Shows),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode provider %q: %w", e.Name, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func nonNil(titles []catalog.Title) []catalog.Title {
	if titles == nil {
		return []catalog.Title{}
	}
	return titles
}

// Load reconstructs a snapshot from disk. The providers object is decoded
// with a token stream to keep provider order.
func (s *Store) Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := decodeSnapshot(json.NewDecoder(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadSnapshot, path, err)
	}

	s.logger.Info().
		Str("path", path).
		Str("region", snap.Region).
		Time("fetched_at", snap.FetchedAt).
		Int("providers", snap.Catalog.Len()).
		Msg("Loaded catalog snapshot")

	return snap, nil
}

func decodeSnapshot(dec *json.Decoder) (*Snapshot, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	snap := &Snapshot{Catalog: catalog.New()}
	var sawProviders bool

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		switch key {
		case "fetched_at":
			var raw string
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("fetched_at: %v", err)
			}
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, fmt.Errorf("fetched_at: %v", err)
			}
			snap.FetchedAt = ts
		case "region":
			if err := dec.Decode(&snap.Region); err != nil {
				return nil, fmt.Errorf("region: %v", err)
			}
		case "providers":
			if err := decodeProviders(dec, snap.Catalog); err != nil {
				return nil, err
			}
			sawProviders = true
		default:
			// Skip unknown fields
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if !sawProviders {
		return nil, fmt.Errorf("missing providers field")
	}

	return snap, nil
}

func decodeProviders(dec *json.Decoder, cat *catalog.Catalog) error {
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("providers: %v", err)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("providers: %v", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("providers: unexpected token %v", tok)
		}

		var sec sections
		if err := dec.Decode(&sec); err != nil {
			return fmt.Errorf("provider %q: %v", name, err)
		}

		cat.Append(catalog.ProviderEntry{
			Name:   name,
			Movies: nonNil(sec.Movies),
			Shows:  nonNil(sec.Shows),
		})
	}

	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
