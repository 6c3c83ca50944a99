package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// StoreConfig configures how the catalog source is fetched.
type StoreConfig struct {
	// Source is a local CSV path or an http(s) URL.
	Source string
	// Timeout, MaxRetries and RetryWait apply to remote sources only.
	Timeout    time.Duration
	MaxRetries int
	RetryWait  time.Duration
}

// Store serves the parsed catalog table, caching it between requests.
//
// For file sources the cache is keyed by modification time: the file is
// re-stat'ed on every access and reparsed only when its mtime changes.
// Remote sources are fetched once and held for the process lifetime.
// Concurrent HTTP handlers share the store, hence the RWMutex; the table
// itself is read-only after parsing.
type Store struct {
	cfg    StoreConfig
	client *resty.Client
	l      *slog.Logger

	mu      sync.RWMutex
	table   *Table
	modTime time.Time
}

func NewStore(cfg StoreConfig, l *slog.Logger) *Store {
	s := &Store{cfg: cfg, l: l}
	if s.isRemote() {
		s.client = resty.New().
			SetTimeout(cfg.Timeout).
			SetRetryCount(cfg.MaxRetries).
			SetRetryWaitTime(cfg.RetryWait)
	}
	return s
}

func (s *Store) isRemote() bool {
	return strings.HasPrefix(s.cfg.Source, "http://") || strings.HasPrefix(s.cfg.Source, "https://")
}

// Table returns the parsed catalog, loading or refreshing it as needed.
func (s *Store) Table() (*Table, error) {
	if s.isRemote() {
		return s.remoteTable()
	}
	return s.fileTable()
}

func (s *Store) remoteTable() (*Table, error) {
	s.mu.RLock()
	cached := s.table
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil {
		return s.table, nil
	}

	resp, err := s.client.R().Get(s.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog from %s: %w", s.cfg.Source, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching catalog from %s: %s", s.cfg.Source, resp.Status())
	}

	table, err := Load(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parsing catalog from %s: %w", s.cfg.Source, err)
	}

	s.l.Info("catalog loaded", "source", s.cfg.Source, "rows", table.Len())
	s.table = table
	return table, nil
}

func (s *Store) fileTable() (*Table, error) {
	info, err := os.Stat(s.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	s.mu.RLock()
	cached, cachedAt := s.table, s.modTime
	s.mu.RUnlock()
	if cached != nil && cachedAt.Equal(info.ModTime()) {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table != nil && s.modTime.Equal(info.ModTime()) {
		return s.table, nil
	}

	f, err := os.Open(s.cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", s.cfg.Source, err)
	}

	s.l.Info("catalog loaded", "source", s.cfg.Source, "rows", table.Len())
	s.table = table
	s.modTime = info.ModTime()
	return table, nil
}

// Load parses a CSV stream into a Table. The first record is the header.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog rows: %w", err)
	}

	return NewTable(header, records)
}
