// Package cache reuses report artifacts across runs.
//
// One entry holds the rendered artifact of one module together with a
// hash of the module's source files. A run with an unchanged hash
// writes the cached bytes back out instead of re-analyzing; nothing
// analysis-internal is ever persisted.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
	"tlog.app/go/errors"

	"github.com/checkmerge/checkmerge/internal/report"
)

// Entry is one cached module artifact.
type Entry struct {
	Hash     string        `msgpack:"hash"`
	Artifact []byte        `msgpack:"artifact"`
	Digest   report.Digest `msgpack:"digest"`
}

// Cache stores entries under a directory, one msgpack file per module.
type Cache struct {
	dir string
}

// New creates a Cache rooted at dir. The directory is created lazily on
// the first Store.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// HashFiles hashes the contents of the named files. The result does not
// depend on the order the names are given in.
func HashFiles(files []string) (string, error) {
	names := make([]string, len(files))
	copy(names, files)
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", errors.Wrap(err, "read %v", name)
		}
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(data)
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Load returns the entry stored for module if its hash matches, or nil
// when there is no usable entry. A missing entry is not an error.
func (c *Cache) Load(module, hash string) (*Entry, error) {
	data, err := os.ReadFile(c.entryPath(module))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "read entry for %v", module)
	}

	var e Entry
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(err, "decode entry for %v", module)
	}
	if e.Hash != hash {
		return nil, nil
	}

	return &e, nil
}

// Store replaces the entry for module.
func (c *Cache) Store(module string, e *Entry) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return errors.Wrap(err, "create cache directory")
	}

	data, err := msgpack.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "encode entry for %v", module)
	}

	if err := os.WriteFile(c.entryPath(module), data, 0644); err != nil {
		return errors.Wrap(err, "write entry for %v", module)
	}

	return nil
}

// entryPath keys the entry file off a hash of the module path so that
// arbitrary import paths stay filesystem-safe.
func (c *Cache) entryPath(module string) string {
	sum := sha256.Sum256([]byte(module))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".cmc")
}
