package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"deptsite/internal/storage"
)

// DefaultFreshness is how long a cached dataset is served without refetching.
const DefaultFreshness = time.Hour

const keyPrefix = "sheet_data_"

// Cache serves datasets from a Store, refetching from a Source once an entry
// is older than the freshness window. Load never fails: a dataset that cannot
// be read or fetched comes back empty.
type Cache struct {
	src       Source
	store     storage.Store
	freshness time.Duration
	now       func() time.Time
	log       *slog.Logger
}

type Option func(*Cache)

func WithFreshness(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.freshness = d
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) { c.log = l }
}

func NewCache(src Source, store storage.Store, opts ...Option) *Cache {
	c := &Cache{
		src:       src,
		store:     store,
		freshness: DefaultFreshness,
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// entry is the persisted form: {"timestamp": <unix ms>, "data": [...]}.
type entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Entry is a decoded cache entry.
type Entry struct {
	Name      string
	FetchedAt time.Time
	Rows      []Row
}

// Age reports how old the entry is at now.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

func storeKey(name string) string {
	return keyPrefix + name
}

func (c *Cache) read(name string) (Entry, bool) {
	raw, err := c.store.Get(storeKey(name))
	if err != nil {
		c.log.Warn("cache read failed", "dataset", name, "error", err)
		return Entry{}, false
	}
	if raw == nil {
		return Entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.log.Warn("cache entry corrupted, fetching fresh data", "dataset", name, "error", err)
		return Entry{}, false
	}
	data := bytes.TrimSpace(e.Data)
	if e.Timestamp == 0 || len(data) == 0 || data[0] != '[' {
		c.log.Warn("cache entry malformed, fetching fresh data", "dataset", name)
		return Entry{}, false
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		c.log.Warn("cache entry corrupted, fetching fresh data", "dataset", name, "error", err)
		return Entry{}, false
	}
	if rows == nil {
		rows = []Row{}
	}
	return Entry{Name: name, FetchedAt: time.UnixMilli(e.Timestamp), Rows: rows}, true
}

func (c *Cache) write(name string, rows []Row, at time.Time) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}
	return storage.SetJSON(c.store, storeKey(name), entry{Timestamp: at.UnixMilli(), Data: data})
}

// Load returns the rows of name, from cache while fresh, otherwise from the
// source. Failures degrade to an empty slice.
func (c *Cache) Load(ctx context.Context, name string) []Row {
	now := c.now()
	if e, ok := c.read(name); ok && now.Sub(e.FetchedAt) < c.freshness {
		return e.Rows
	}

	rows, err := c.fetch(ctx, name, now)
	if err != nil {
		if errors.Is(err, ErrUnknownDataset) {
			c.log.Debug("dataset not configured", "dataset", name)
		} else {
			c.log.Warn("failed to load dataset", "dataset", name, "error", err)
		}
		return []Row{}
	}
	return rows
}

// Refresh fetches name regardless of the cached entry's age and stores the
// result. Unlike Load it reports fetch errors.
func (c *Cache) Refresh(ctx context.Context, name string) ([]Row, error) {
	return c.fetch(ctx, name, c.now())
}

func (c *Cache) fetch(ctx context.Context, name string, now time.Time) ([]Row, error) {
	rows, err := c.src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	if err := c.write(name, rows, now); err != nil {
		c.log.Warn("cache write failed", "dataset", name, "error", err)
	}
	return rows, nil
}

// Peek returns the cached entry for name without fetching.
func (c *Cache) Peek(name string) (Entry, bool) {
	return c.read(name)
}

// Entries lists every cached dataset.
func (c *Cache) Entries() ([]Entry, error) {
	infos, err := c.store.List()
	if err != nil {
		return nil, fmt.Errorf("list cache: %w", err)
	}
	var out []Entry
	for _, info := range infos {
		name, ok := strings.CutPrefix(info.ID, keyPrefix)
		if !ok {
			continue
		}
		if e, ok := c.read(name); ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Invalidate drops the cached entry for name.
func (c *Cache) Invalidate(name string) error {
	if err := c.store.Delete(storeKey(name)); err != nil {
		return fmt.Errorf("invalidate %s: %w", name, err)
	}
	return nil
}

// Clear drops every cached dataset and returns how many were removed.
func (c *Cache) Clear() (int, error) {
	infos, err := c.store.List()
	if err != nil {
		return 0, fmt.Errorf("list cache: %w", err)
	}
	n := 0
	for _, info := range infos {
		if !strings.HasPrefix(info.ID, keyPrefix) {
			continue
		}
		if err := c.store.Delete(info.ID); err != nil {
			return n, fmt.Errorf("clear %s: %w", info.ID, err)
		}
		n++
	}
	return n, nil
}

// Freshness returns the configured freshness window.
func (c *Cache) Freshness() time.Duration {
	return c.freshness
}

// Stale reports whether e is past the freshness window.
func (c *Cache) Stale(e Entry) bool {
	return c.now().Sub(e.FetchedAt) >= c.freshness
}
