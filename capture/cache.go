package capture

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

const cacheVersion = 1

// Cache stores extracted payload lines keyed by capture content, so repeated
// plots of the same capture skip the capture reader.
type Cache struct {
	Dir string
}

type cacheEntry struct {
	Version  int      `cbor:"1,keyasint"`
	Fields   []string `cbor:"2,keyasint"`
	Payloads []string `cbor:"3,keyasint"`
}

// Key hashes the capture contents together with the extracted fields.
func (c *Cache) Key(captureFile string, fields []string) (string, error) {
	f, err := os.Open(captureFile)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCaptureFile, err)
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	for _, field := range fields {
		_, _ = h.Write([]byte(field))
		_, _ = h.Write([]byte{0})
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash capture: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.Dir, key+".cbor")
}

// Load returns the cached payloads for key. A missing or stale entry is a
// miss, not an error.
func (c *Cache) Load(key string, fields []string) ([]string, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	var e cacheEntry
	if err := cbor.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if e.Version != cacheVersion || !slices.Equal(e.Fields, fields) {
		return nil, false, nil
	}
	return e.Payloads, true, nil
}

// Store writes payloads under key. The entry is written to a temporary file
// and renamed into place.
func (c *Cache) Store(key string, fields []string, payloads []string) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := cbor.Marshal(cacheEntry{
		Version:  cacheVersion,
		Fields:   fields,
		Payloads: payloads,
	})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(c.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return os.Rename(tmp.Name(), c.path(key))
}
