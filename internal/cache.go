package internal

import (
	"crypto/md5"
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/fbf-logic/tutor/internal/types"
)

const (
	cacheFileName = "banks.gob"
	defaultMaxAge = 24 * time.Hour
)

// bankResult is the lint outcome of one problem bank.
//
// It is reused only while the bank bytes, the configuration file and the
// active rule set all match what they were when the bank was linted.
type bankResult struct {
	Bank     string
	Config   string
	Rules    string
	Issues   []tt.Issue
	LintedAt time.Time
}

// Cache keeps the issues of problem banks between lint runs, persisted
// as a gob file in its directory.
type Cache struct {
	dir        string
	configPath string
	maxAge     time.Duration

	mu      sync.Mutex
	results map[string]bankResult
}

// NewCache opens the cache stored in dir. configPath names the
// configuration file whose contents the results depend on; it may be
// empty or missing.
func NewCache(dir, configPath string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		dir:        dir,
		configPath: configPath,
		maxAge:     defaultMaxAge,
		results:    make(map[string]bankResult),
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, cacheFileName)
}

func (c *Cache) load() error {
	f, err := os.Open(c.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	var stored map[string]bankResult
	if err := gob.NewDecoder(f).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode %s: %w", c.path(), err)
	}
	if stored != nil {
		c.results = stored
	}
	return nil
}

func (c *Cache) save() error {
	f, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(c.results); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}
	return nil
}

// Get returns the issues last stored for bank under the given rule set.
func (c *Cache) Get(bank, rules string) ([]tt.Issue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, ok := c.results[bank]
	if !ok {
		return nil, false
	}
	if time.Since(result.LintedAt) > c.maxAge {
		delete(c.results, bank)
		return nil, false
	}

	bankDigest, err := digest(bank)
	if err != nil || bankDigest != result.Bank {
		delete(c.results, bank)
		return nil, false
	}
	if result.Rules != rules || c.configDigest() != result.Config {
		return nil, false
	}
	return result.Issues, true
}

// Set stores the issues of bank linted under the given rule set.
func (c *Cache) Set(bank, rules string, issues []tt.Issue) error {
	bankDigest, err := digest(bank)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[bank] = bankResult{
		Bank:     bankDigest,
		Config:   c.configDigest(),
		Rules:    rules,
		Issues:   issues,
		LintedAt: time.Now(),
	}
	return c.save()
}

// SetMaxAge sets how long a result stays usable.
func (c *Cache) SetMaxAge(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxAge = d
}

// InvalidateAll drops every stored result.
func (c *Cache) InvalidateAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = make(map[string]bankResult)
	return c.save()
}

// configDigest is empty when there is no configuration file, which is the
// same as running on defaults.
func (c *Cache) configDigest() string {
	if c.configPath == "" {
		return ""
	}
	d, err := digest(c.configPath)
	if err != nil {
		return ""
	}
	return d
}

func digest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}
