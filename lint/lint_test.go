package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/types"
)

func init() {
	ProgressOutput = io.Discard
}

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte, format problem.Format) ([]types.Issue, error) {
	args := m.Called(source, format)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func issueFor(rule, filename string) types.Issue {
	return types.Issue{
		Rule:     rule,
		Filename: filename,
		Problem:  "p1",
		Field:    "solution[0]",
		Value:    `P \oplus Q`,
		Start:    2,
		End:      8,
		Message:  "Test issue",
	}
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte("[]"), 0o644))
		paths = append(paths, filePath)
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expectedIssues := []types.Issue{issueFor("test-rule", "bank.json")}
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", "bank.json").Return(expectedIssues, nil)

	issues, err := ProcessFile(mockEngine, "bank.json")

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		source string
		format problem.Format
	}{
		{"json list", `[{"type": "truthTable"}]`, problem.FormatJSON},
		{"json object", "  {\"p1\": {}}", problem.FormatJSON},
		{"yaml", "- type: truthTable\n", problem.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			expectedIssues := []types.Issue{issueFor("test-rule", "")}
			mockEngine := new(mockLintEngine)
			mockEngine.On("RunSource", []byte(tt.source), tt.format).Return(expectedIssues, nil)

			issues, err := ProcessSource(mockEngine, []byte(tt.source))

			assert.NoError(t, err)
			assert.Equal(t, expectedIssues, issues)
			mockEngine.AssertExpectations(t)
		})
	}
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()
	tempDir := t.TempDir()

	// created out of order; results come back sorted by path
	paths := createTempFiles(t, tempDir, "week2/nested.yaml", "week1.json")
	createTempFiles(t, tempDir, "notes.txt")

	expectedIssues := []types.Issue{
		issueFor("rule1", paths[1]),
		issueFor("rule2", paths[0]),
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessPath(ctx, logger, mockEngine, tempDir, ProcessFile)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
	mockEngine.AssertNotCalled(t, "Run", filepath.Join(tempDir, "notes.txt"))
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "bank.yml", "readme.md")

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{issueFor("rule1", paths[0])}, nil)

	issues, err := ProcessPath(context.Background(), nil, mockEngine, paths[0], ProcessFile)
	require.NoError(t, err)
	assert.Len(t, issues, 1)

	issues, err = ProcessPath(context.Background(), nil, mockEngine, paths[1], ProcessFile)
	require.NoError(t, err)
	assert.Equal(t, []types.Issue{}, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()
	_, err := ProcessPath(context.Background(), nil, new(mockLintEngine), filepath.Join(t.TempDir(), "absent"), ProcessFile)
	assert.ErrorContains(t, err, "error accessing")
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()
	tempDir := t.TempDir()

	paths := createTempFiles(t, tempDir, "a.json", "b.json")

	expectedIssues := []types.Issue{
		issueFor("rule1", paths[0]),
		issueFor("rule2", paths[1]),
	}

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", paths[0]).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("Run", paths[1]).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessFiles(ctx, logger, mockEngine, paths, ProcessFile)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSources(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	ctx := context.Background()

	first := []byte(`[{"id": "one"}]`)
	second := []byte("- id: two\n")
	expectedIssues := []types.Issue{issueFor("rule1", ""), issueFor("rule2", "")}

	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", first, problem.FormatJSON).Return([]types.Issue{expectedIssues[0]}, nil)
	mockEngine.On("RunSource", second, problem.FormatYAML).Return([]types.Issue{expectedIssues[1]}, nil)

	issues, err := ProcessSources(ctx, logger, mockEngine, [][]byte{first, second}, ProcessSource)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	for i := 0; i < 10; i++ {
		createTempFiles(t, tempDir, fmt.Sprintf("bank%d.json", i))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	issues, err := ProcessPath(ctx, nil, new(mockLintEngine), tempDir, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, issues)
}

func TestConcurrentProcessingWithErrors(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	for i := 0; i < 3; i++ {
		createTempFiles(t, tempDir, fmt.Sprintf("valid%d.json", i))
	}
	invalidFile := filepath.Join(tempDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidFile, []byte("this is not a problem bank"), 0o644))

	engine, err := New(filepath.Join(tempDir, "absent.yaml"))
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, tempDir, ProcessFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid.json")
	assert.Empty(t, issues)
}

func TestErrorPropagationSingleFile(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	invalidFile := filepath.Join(tempDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidFile, []byte("{"), 0o644))

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", invalidFile).Return([]types.Issue(nil), errors.New("error parsing"))

	issues, err := ProcessPath(context.Background(), nil, mockEngine, invalidFile, ProcessFile)

	assert.Error(t, err)
	assert.Equal(t, []types.Issue{}, issues)
}

func TestNewReadsRuleSeverities(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := filepath.Join(dir, ".tutor.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules:\n  unknown-type:\n    severity: off\n"), 0o644))
	bank := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(bank, []byte(`[{"type": "essay", "text": "?", "solution": "P"}]`), 0o644))

	engine, err := New(cfg)
	require.NoError(t, err)

	issues, err := ProcessPath(context.Background(), nil, engine, bank, ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestNewRejectsUnknownRule(t *testing.T) {
	t.Parallel()
	cfg := filepath.Join(t.TempDir(), ".tutor.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("rules:\n  no-such-rule:\n    severity: info\n"), 0o644))

	_, err := New(cfg)
	assert.ErrorContains(t, err, "no-such-rule")
}
