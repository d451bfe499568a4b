package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/samuel0642/MerkleVault/internal/catalog"
)

// Storage represents the persistent storage for catalog artifacts.
// Artifacts are stored as JSON files keyed by their root hash.
type Storage struct {
	mu      sync.RWMutex
	baseDir string
}

// NewStorage creates a new storage instance
func NewStorage(baseDir string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, "catalogs"), 0755); err != nil {
		return nil, err
	}
	return &Storage{
		baseDir: baseDir,
	}, nil
}

// SaveCatalog saves a catalog artifact, keyed by its root hash
func (s *Storage) SaveCatalog(artifact *catalog.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := artifact.Encode()
	if err != nil {
		return err
	}

	path := s.catalogPath(artifact.Metadata.Root)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save catalog: %v", err)
	}
	return nil
}

// LoadCatalog loads the catalog artifact with the given root hash
func (s *Storage) LoadCatalog(root string) (*catalog.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.catalogPath(root))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %v", err)
	}
	return catalog.DecodeArtifact(data)
}

// ListCatalogs returns the root hashes of all stored catalogs, sorted
func (s *Storage) ListCatalogs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.baseDir, "catalogs"))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogs directory: %v", err)
	}

	roots := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		roots = append(roots, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(roots)
	return roots, nil
}

func (s *Storage) catalogPath(root string) string {
	return filepath.Join(s.baseDir, "catalogs", strings.ToLower(root)+".json")
}
