package wallet

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gifportal/internal/jsonutil"
)

const (
	// TrustFileEnv is the env var override for the trust store path (for testing).
	TrustFileEnv = "GIFPORTAL_TRUST_FILE"
	// DefaultTrustFile is the default trust store path relative to the user's home.
	DefaultTrustFile = ".config/gifportal/trusted.json"
)

// TrustStore records which wallet addresses have approved which origins.
// Layout: {"origins": {"<origin>": ["<base58 address>", ...]}}
type TrustStore struct {
	mu   sync.Mutex
	path string
}

type trustDoc struct {
	Origins map[string][]string `json:"origins"`
}

// NewTrustStore creates a store at the given path. An empty path resolves to
// GIFPORTAL_TRUST_FILE if set, otherwise ~/.config/gifportal/trusted.json.
func NewTrustStore(path string) (*TrustStore, error) {
	if path == "" {
		path = os.Getenv(TrustFileEnv)
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, DefaultTrustFile)
	}
	return &TrustStore{path: path}, nil
}

// Path returns the file backing the store.
func (s *TrustStore) Path() string {
	return s.path
}

// IsTrusted reports whether address previously approved origin.
// A missing or unreadable file means nothing is trusted.
func (s *TrustStore) IsTrusted(origin, address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return false
	}
	return slices.Contains(doc.Origins[origin], address)
}

// Trust records that address approved origin.
func (s *TrustStore) Trust(origin, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	if slices.Contains(doc.Origins[origin], address) {
		return nil
	}
	doc.Origins[origin] = append(doc.Origins[origin], address)
	return jsonutil.WriteFile(s.path, doc)
}

func (s *TrustStore) load() (*trustDoc, error) {
	doc := &trustDoc{}
	if err := jsonutil.ReadFile(s.path, doc); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if doc.Origins == nil {
		doc.Origins = make(map[string][]string)
	}
	return doc, nil
}
