package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/fbf-logic/tutor/internal/types"
)

const testRuleSet = "missing-solution=ERROR,unknown-type=ERROR"

var cachedIssues = []tt.Issue{
	{
		Rule:     "malformed-solution",
		Category: "solution",
		Filename: "bank.json",
		Problem:  "p1",
		Field:    "solution[0]",
		Value:    `P \oplus Q`,
		Start:    2,
		End:      8,
		Message:  "unknown escape",
		Severity: tt.SeverityError,
	},
}

func writeBank(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCacheReusesUnchangedBank(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bank := writeBank(t, filepath.Join(dir, "bank.json"), "[]")

	cache, err := NewCache(filepath.Join(dir, "cache"), "")
	require.NoError(t, err)
	require.NoError(t, cache.Set(bank, testRuleSet, cachedIssues))

	loaded, found := cache.Get(bank, testRuleSet)
	assert.True(t, found)
	assert.Equal(t, cachedIssues, loaded)

	// a fresh cache reads the gob file back
	reopened, err := NewCache(filepath.Join(dir, "cache"), "")
	require.NoError(t, err)
	loaded, found = reopened.Get(bank, testRuleSet)
	assert.True(t, found)
	assert.Equal(t, cachedIssues, loaded)
}

func TestCacheMisses(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		after func(t *testing.T, c *Cache, bank, config string)
		rules string
	}{
		{
			name: "bank edited",
			after: func(t *testing.T, _ *Cache, bank, _ string) {
				writeBank(t, bank, `[{"type": "truthTable"}]`)
			},
			rules: testRuleSet,
		},
		{
			name: "bank removed",
			after: func(t *testing.T, _ *Cache, bank, _ string) {
				require.NoError(t, os.Remove(bank))
			},
			rules: testRuleSet,
		},
		{
			name: "configuration edited",
			after: func(t *testing.T, _ *Cache, _, config string) {
				require.NoError(t, os.WriteFile(config, []byte("mode: semantic\n"), 0o644))
			},
			rules: testRuleSet,
		},
		{
			name:  "rule ignored",
			after: func(*testing.T, *Cache, string, string) {},
			rules: "missing-solution=ERROR",
		},
		{
			name:  "severity changed",
			after: func(*testing.T, *Cache, string, string) {},
			rules: "missing-solution=ERROR,unknown-type=WARNING",
		},
		{
			name: "result too old",
			after: func(t *testing.T, c *Cache, _, _ string) {
				c.SetMaxAge(time.Nanosecond)
				time.Sleep(time.Millisecond)
			},
			rules: testRuleSet,
		},
		{
			name: "invalidated",
			after: func(t *testing.T, c *Cache, _, _ string) {
				require.NoError(t, c.InvalidateAll())
			},
			rules: testRuleSet,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			bank := writeBank(t, filepath.Join(dir, "bank.json"), "[]")
			config := writeBank(t, filepath.Join(dir, ".tutor.yaml"), "mode: textual\n")

			cache, err := NewCache(filepath.Join(dir, "cache"), config)
			require.NoError(t, err)
			require.NoError(t, cache.Set(bank, testRuleSet, cachedIssues))

			tc.after(t, cache, bank, config)
			_, found := cache.Get(bank, tc.rules)
			assert.False(t, found)
		})
	}
}

func TestCacheUnknownBank(t *testing.T) {
	t.Parallel()
	cache, err := NewCache(t.TempDir(), "")
	require.NoError(t, err)

	_, found := cache.Get("nonexistent.json", testRuleSet)
	assert.False(t, found)
	assert.Error(t, cache.Set("nonexistent.json", testRuleSet, nil))
}

func TestCacheMissingConfiguration(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bank := writeBank(t, filepath.Join(dir, "bank.json"), "[]")

	// a configuration file that does not exist yet counts as defaults
	cache, err := NewCache(filepath.Join(dir, "cache"), filepath.Join(dir, ".tutor.yaml"))
	require.NoError(t, err)
	require.NoError(t, cache.Set(bank, testRuleSet, nil))

	_, found := cache.Get(bank, testRuleSet)
	assert.True(t, found)
}

func TestCacheCorruptFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFileName), []byte("not gob"), 0o644))

	_, err := NewCache(dir, "")
	assert.ErrorContains(t, err, "failed to load cache")
}
