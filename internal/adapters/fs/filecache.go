package fs

import (
	"bufio"
	"bytes"
	"errors"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/assemble/internal/core/domain"
	"go.trai.ch/assemble/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.FileHashCache    = (*FileCache)(nil)
	_ ports.FileCacheFactory = (*FileCacheFactory)(nil)
)

// entrySeparator separates path and hash on each line of the table.
const entrySeparator = " : "

// FileCache keeps the content hashes of files in a build directory across builds.
//
// The table is stored in domain.FileCacheName as sorted "path : hash" lines next to a
// domain.FileCacheVersionName file holding the format version.
type FileCache struct {
	dir    string
	hasher ports.Hasher

	mu       sync.Mutex
	previous map[string]string
	current  map[string]string

	// persistMu serializes writers of the table files.
	persistMu sync.Mutex
}

// NewFileCache creates an empty FileCache stored in dir.
func NewFileCache(dir string, hasher ports.Hasher) *FileCache {
	return &FileCache{
		dir:      filepath.Clean(dir),
		hasher:   hasher,
		previous: make(map[string]string),
		current:  make(map[string]string),
	}
}

// Initialize loads the persisted hashes. A missing table, a version mismatch or a malformed
// table leaves the previous hashes empty.
func (c *FileCache) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.previous = make(map[string]string)

	version, err := os.ReadFile(filepath.Join(c.dir, domain.FileCacheVersionName))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrFileCacheReadFailed.Error()), "dir", c.dir)
	}
	if strings.TrimSpace(string(version)) != strconv.Itoa(domain.FileCacheVersion) {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(c.dir, domain.FileCacheName))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrFileCacheReadFailed.Error()), "dir", c.dir)
	}

	if table, ok := parseTable(data); ok {
		c.previous = table
	}
	return nil
}

func parseTable(data []byte) (map[string]string, bool) {
	table := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		// Paths may contain the separator, hashes never do.
		idx := strings.LastIndex(line, entrySeparator)
		if idx <= 0 {
			return nil, false
		}
		table[line[:idx]] = line[idx+len(entrySeparator):]
	}
	if scanner.Err() != nil {
		return nil, false
	}
	return table, true
}

// HashFiles hashes every given file that has not been hashed in this pass yet.
func (c *FileCache) HashFiles(paths []string) map[string]string {
	result := make(map[string]string, len(paths))
	for _, p := range paths {
		c.mu.Lock()
		hash, ok := c.current[p]
		c.mu.Unlock()

		if !ok {
			var err error
			hash, err = c.hasher.HashFile(p)
			if err != nil {
				continue
			}
			c.mu.Lock()
			c.current[p] = hash
			c.mu.Unlock()
		}
		result[p] = hash
	}
	return result
}

// Invalidate forgets the hashes computed in this pass for paths.
func (c *FileCache) Invalidate(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.current, p)
	}
}

// PreviousHashes returns a copy of the hashes loaded by Initialize.
func (c *FileCache) PreviousHashes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.previous)
}

// CurrentHashes returns a copy of the hashes computed in this pass.
func (c *FileCache) CurrentHashes() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.current)
}

// Persist writes the version marker and the current hashes merged over the previous ones.
func (c *FileCache) Persist() error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	merged := maps.Clone(c.previous)
	maps.Copy(merged, c.current)
	c.mu.Unlock()

	if err := os.MkdirAll(c.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCacheWriteFailed.Error()), "dir", c.dir)
	}

	versionPath := filepath.Join(c.dir, domain.FileCacheVersionName)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(versionPath, []byte(strconv.Itoa(domain.FileCacheVersion)), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCacheWriteFailed.Error()), "path", versionPath)
	}

	var buf bytes.Buffer
	for _, p := range slices.Sorted(maps.Keys(merged)) {
		buf.WriteString(p)
		buf.WriteString(entrySeparator)
		buf.WriteString(merged[p])
		buf.WriteByte('\n')
	}

	tablePath := filepath.Join(c.dir, domain.FileCacheName)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tablePath, buf.Bytes(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileCacheWriteFailed.Error()), "path", tablePath)
	}

	return nil
}

// FileCacheFactory opens FileCaches that hash with the given Hasher.
type FileCacheFactory struct {
	hasher ports.Hasher
}

// NewFileCacheFactory creates a new FileCacheFactory.
func NewFileCacheFactory(hasher ports.Hasher) *FileCacheFactory {
	return &FileCacheFactory{hasher: hasher}
}

// Open creates and initializes the FileCache stored in buildDir.
func (f *FileCacheFactory) Open(buildDir string) (ports.FileHashCache, error) {
	cache := NewFileCache(buildDir, f.hasher)
	if err := cache.Initialize(); err != nil {
		return nil, err
	}
	return cache, nil
}

// Remove deletes the table and version file stored in buildDir.
func (f *FileCacheFactory) Remove(buildDir string) error {
	for _, name := range []string{domain.FileCacheName, domain.FileCacheVersionName} {
		path := filepath.Join(buildDir, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path)
		}
	}
	return nil
}
