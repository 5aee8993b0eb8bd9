package crop

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestFile is the cache file recording which source images have
// already been processed, stored inside the output directory.
const ManifestFile = "img.cache"

// Manifest maps source image names to the SHA-256 of their content at
// the time they were last processed. A changed source hashes
// differently and gets reprocessed even though its output exists.
type Manifest struct {
	path    string
	entries map[string]string
}

// LoadManifest reads the manifest from dir. A missing or corrupt file
// yields an empty manifest; the cache then simply misses.
func LoadManifest(dir string) *Manifest {
	m := &Manifest{
		path:    filepath.Join(dir, ManifestFile),
		entries: map[string]string{},
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		m.entries = map[string]string{}
	}
	return m
}

// Fresh reports whether name was already processed from content with
// this exact hash.
func (m *Manifest) Fresh(name, hash string) bool {
	return m.entries[name] == hash
}

// Record marks name as processed from content with this hash.
func (m *Manifest) Record(name, hash string) {
	m.entries[name] = hash
}

// Save writes the manifest back to its directory.
func (m *Manifest) Save() error {
	data, err := json.Marshal(m.entries)
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0644)
}

// HashFile returns the full SHA-256 hex digest of a file's content.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
