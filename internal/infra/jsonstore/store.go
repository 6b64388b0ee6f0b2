package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
)

// document is the full on-disk snapshot. Every mutation rewrites it in
// one piece via a temp file + rename, so a reader of the canonical path
// never observes a partial write.
type document struct {
	RegisteredAssets []domain.RegisteredAsset `json:"registeredAssets"`
	Violations       []domain.Violation       `json:"violations"`
	ScanHistory      []domain.ScanRecord      `json:"scanHistory"`
}

// Store holds the asset/violation/scan corpus in memory and mirrors it
// to a single JSON document. The mutex serializes every mutation with
// its disk rewrite: at most one rewrite is in flight, and a sequential
// reader reloading the file observes mutations in commit order. Reads
// never touch disk.
type Store struct {
	mu   sync.RWMutex
	path string

	assets     map[string]domain.RegisteredAsset
	violations map[string]domain.Violation
	scans      map[string]domain.ScanRecord

	persistErr error
}

// Open loads the document at path, creating an empty one when the file
// does not exist. A present-but-unparsable document fails with
// domain.ErrCorruptStore instead of silently starting empty.
func Open(path string) (*Store, error) {
	s := &Store{
		path:       path,
		assets:     make(map[string]domain.RegisteredAsset),
		violations: make(map[string]domain.Violation),
		scans:      make(map[string]domain.ScanRecord),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store document: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, path, err)
	}
	for _, a := range doc.RegisteredAssets {
		s.assets[a.ID] = a
	}
	for _, v := range doc.Violations {
		s.violations[v.ID] = v
	}
	for _, rec := range doc.ScanHistory {
		s.scans[rec.ID] = rec
	}
	return s, nil
}

// Close flushes once more if the last rewrite failed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persistErr == nil {
		return nil
	}
	return s.persistLocked()
}

func (s *Store) Path() string {
	return s.path
}

// LastPersistError reports the most recent failed rewrite, or nil when
// the in-memory state and the document agree. Feeds the health signal.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// persistLocked rewrites the whole document. Callers hold s.mu.
func (s *Store) persistLocked() error {
	doc := document{
		RegisteredAssets: make([]domain.RegisteredAsset, 0, len(s.assets)),
		Violations:       make([]domain.Violation, 0, len(s.violations)),
		ScanHistory:      make([]domain.ScanRecord, 0, len(s.scans)),
	}
	for _, a := range s.assets {
		doc.RegisteredAssets = append(doc.RegisteredAssets, a)
	}
	for _, v := range s.violations {
		doc.Violations = append(doc.Violations, v)
	}
	for _, rec := range s.scans {
		doc.ScanHistory = append(doc.ScanHistory, rec)
	}
	sort.Slice(doc.RegisteredAssets, func(i, j int) bool { return doc.RegisteredAssets[i].ID < doc.RegisteredAssets[j].ID })
	sort.Slice(doc.Violations, func(i, j int) bool { return doc.Violations[i].ID < doc.Violations[j].ID })
	sort.Slice(doc.ScanHistory, func(i, j int) bool { return doc.ScanHistory[i].ID < doc.ScanHistory[j].ID })

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return s.recordPersist(fmt.Errorf("marshal store document: %w", err))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return s.recordPersist(fmt.Errorf("create temp document: %w", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return s.recordPersist(fmt.Errorf("write temp document: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return s.recordPersist(fmt.Errorf("sync temp document: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return s.recordPersist(fmt.Errorf("close temp document: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return s.recordPersist(fmt.Errorf("rename store document: %w", err))
	}
	s.persistErr = nil
	return nil
}

// recordPersist keeps the store serving from memory but makes the
// failed rewrite observable and surfaces it to the mutating caller.
// The next mutation rewrites the full snapshot and so retries this one.
func (s *Store) recordPersist(err error) error {
	s.persistErr = err
	log.Printf("jsonstore: rewrite of %s failed: %v", s.path, err)
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

// Asset operations

func (s *Store) PutAsset(asset domain.RegisteredAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.ID] = asset
	return s.persistLocked()
}

func (s *Store) GetAsset(id string) (*domain.RegisteredAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	asset, ok := s.assets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &asset, nil
}

func (s *Store) ListAssets() []domain.RegisteredAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RegisteredAsset, 0, len(s.assets))
	for _, a := range s.assets {
		out = append(out, a)
	}
	return out
}

func (s *Store) DeleteAsset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.assets, id)
	return s.persistLocked()
}

// Violation operations

func (s *Store) PutViolation(v domain.Violation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.violations[v.ID] = v
	return s.persistLocked()
}

func (s *Store) GetViolation(id string) (*domain.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.violations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (s *Store) ListViolations() []domain.Violation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Violation, 0, len(s.violations))
	for _, v := range s.violations {
		out = append(out, v)
	}
	return out
}

func (s *Store) ViolationsByStatus(status domain.ViolationStatus) []domain.Violation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Violation
	for _, v := range s.violations {
		if v.Status == status {
			out = append(out, v)
		}
	}
	return out
}

// FindViolation returns the violation for an (asset, sighting-target)
// pair regardless of status, or ErrNotFound. This is the dedup lookup.
func (s *Store) FindViolation(assetID, foundURL string) (*domain.Violation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.violations {
		if v.RegisteredIPID == assetID && v.FoundURL == foundURL {
			out := v
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Store) UpdateViolationStatus(id string, status domain.ViolationStatus) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.violations[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Status = status
	s.violations[id] = v
	return s.persistLocked()
}

// Scan operations

func (s *Store) PutScan(rec domain.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans[rec.ID] = rec
	return s.persistLocked()
}

// ListScans returns scan history, newest first.
func (s *Store) ListScans() []domain.ScanRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ScanRecord, 0, len(s.scans))
	for _, rec := range s.scans {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScannedAt.After(out[j].ScannedAt) })
	return out
}
