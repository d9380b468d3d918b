package charts

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/highwayhash"
	"gopkg.in/yaml.v3"
)

// ErrChartNotFound is returned by Get and Remove for unknown ids.
var ErrChartNotFound = errors.New("chart not found")

// Repository is the keyed store of saved charts.
type Repository interface {
	List() ([]*StoredChart, error)
	Get(id string) (*StoredChart, error)
	Add(chart *StoredChart) error
	Remove(id string) error
}

// storeConfig is the on-disk YAML layout.
type storeConfig struct {
	// HashKey is the base64-encoded 32-byte key for HighwayHash
	// fingerprints. Generated once when the store file is created so
	// fingerprints stay stable across sessions of the same store.
	HashKey string        `yaml:"hash_key"`
	Charts  []StoredChart `yaml:"charts"`
}

// LocalStore is a YAML-file-backed Repository. Every mutation rewrites the
// whole file; chart lists are small enough that this stays cheap.
type LocalStore struct {
	path string

	mu      sync.RWMutex
	charts  map[string]*StoredChart
	hashKey []byte
}

var _ Repository = (*LocalStore)(nil)

// OpenLocalStore loads the store file at path, creating it (with a fresh
// hash key) if it does not exist.
func OpenLocalStore(path string) (*LocalStore, error) {
	s := &LocalStore{
		path:   path,
		charts: make(map[string]*StoredChart),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		key, err := generateHashKey()
		if err != nil {
			return nil, err
		}
		s.hashKey = key
		if err := s.save(); err != nil {
			return nil, err
		}
		return s, nil
	}

	var cfg storeConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse chart store: %w", err)
	}

	s.hashKey, err = base64.StdEncoding.DecodeString(cfg.HashKey)
	if err != nil || len(s.hashKey) != 32 {
		return nil, fmt.Errorf("chart store has an invalid hash key")
	}

	for i := range cfg.Charts {
		c := cfg.Charts[i]
		s.charts[c.ID] = &c
	}
	return s, nil
}

// List returns all saved charts ordered by creation time.
func (s *LocalStore) List() ([]*StoredChart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredChart, 0, len(s.charts))
	for _, c := range s.charts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get returns the chart with the given id.
func (s *LocalStore) Get(id string) (*StoredChart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok {
		return nil, ErrChartNotFound
	}
	return c, nil
}

// Add saves a chart, assigning an id and timestamps when missing, and
// persists the store.
func (s *LocalStore) Add(chart *StoredChart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chart.ID == "" {
		chart.ID = uuid.New().String()
	}
	now := time.Now()
	if chart.CreatedAt.IsZero() {
		chart.CreatedAt = now
	}
	chart.UpdatedAt = now

	s.charts[chart.ID] = chart
	return s.save()
}

// Remove deletes the chart with the given id and persists the store.
func (s *LocalStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[id]; !ok {
		return ErrChartNotFound
	}
	delete(s.charts, id)
	return s.save()
}

// FindByFingerprint returns the first chart whose source fingerprint
// matches, in List order.
func (s *LocalStore) FindByFingerprint(fingerprint string) (*StoredChart, bool) {
	if fingerprint == "" {
		return nil, false
	}
	charts, _ := s.List()
	for _, c := range charts {
		if c.Fingerprint == fingerprint {
			return c, true
		}
	}
	return nil, false
}

// Fingerprint hashes file contents with this store's key. The same bytes
// always produce the same fingerprint within one store.
func (s *LocalStore) Fingerprint(data []byte) (string, error) {
	s.mu.RLock()
	key := s.hashKey
	s.mu.RUnlock()

	h, err := highwayhash.New64(key)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// save writes the store file. Caller must hold the write lock (or be the
// only reference, as in OpenLocalStore).
func (s *LocalStore) save() error {
	cfg := storeConfig{
		HashKey: base64.StdEncoding.EncodeToString(s.hashKey),
		Charts:  make([]StoredChart, 0, len(s.charts)),
	}
	for _, c := range s.charts {
		cfg.Charts = append(cfg.Charts, *c)
	}
	sort.Slice(cfg.Charts, func(i, j int) bool { return cfg.Charts[i].ID < cfg.Charts[j].ID })

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize chart store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0644)
}

// generateHashKey creates a random 32-byte key for HighwayHash.
func generateHashKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}
	return key, nil
}
