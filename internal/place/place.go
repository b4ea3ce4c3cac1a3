// Package place resolves gym place ids to display details, with an
// LRU cache in front of the underlying directory so repeated map
// renders do not hammer it.
package place

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// DefaultCacheSize bounds the number of cached place entries.
const DefaultCacheSize = 512

// Details describes a resolvable real-world gym location.
type Details struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Lookup resolves a place id to its details.
type Lookup interface {
	FindPlace(ctx context.Context, placeID string) (*Details, error)
}

// CachedLookup wraps a Lookup with a fixed-size LRU cache. Negative
// results are not cached; a place missing today may be registered
// tomorrow.
type CachedLookup struct {
	inner Lookup
	cache *lru.Cache[string, Details]
}

// NewCachedLookup creates a caching wrapper. A non-positive size uses
// the default.
func NewCachedLookup(inner Lookup, size int) (*CachedLookup, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, Details](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create place cache: %w", err)
	}
	return &CachedLookup{inner: inner, cache: cache}, nil
}

// FindPlace returns cached details or falls through to the directory.
func (c *CachedLookup) FindPlace(ctx context.Context, placeID string) (*Details, error) {
	if d, ok := c.cache.Get(placeID); ok {
		return &d, nil
	}

	d, err := c.inner.FindPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	c.cache.Add(placeID, *d)
	return d, nil
}

// StaticDirectory is an in-memory Lookup backed by a fixed table,
// used for development and tests.
type StaticDirectory struct {
	places map[string]Details
}

// NewStaticDirectory creates a directory from the given entries.
func NewStaticDirectory(entries []Details) *StaticDirectory {
	places := make(map[string]Details, len(entries))
	for _, e := range entries {
		places[e.PlaceID] = e
	}
	return &StaticDirectory{places: places}
}

func (d *StaticDirectory) FindPlace(ctx context.Context, placeID string) (*Details, error) {
	p, ok := d.places[placeID]
	if !ok {
		return nil, fmt.Errorf("%w: place %s", domain.ErrLocationNotFound, placeID)
	}
	return &p, nil
}

// directoryConfig is the on-disk shape of the place directory.
type directoryConfig struct {
	Places []Details `json:"places"`
}

// LoadDirectory reads a static place directory from a JSON config file.
func LoadDirectory(path string) (*StaticDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read place directory: %w", err)
	}

	var cfg directoryConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse place directory: %w", err)
	}
	return NewStaticDirectory(cfg.Places), nil
}
