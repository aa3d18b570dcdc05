package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/neurobagel/communities/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoEntries = `{
  "diagnosis.json": {
    "namespace_prefix": "ex",
    "namespace_url": "https://example.org/vocab/diagnosis/",
    "vocabulary_name": "Example diagnosis terms",
    "version": "1.0.0",
    "source_spreadsheet_id": "sheet-b"
  },
  "assessment.json": {
    "namespace_prefix": "ex",
    "namespace_url": "https://example.org/vocab/assessment/",
    "vocabulary_name": "Example assessment terms",
    "version": "2.1.0",
    "source_spreadsheet_id": "sheet-a",
    "notes": "ignored"
  }
}`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))
	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := writeManifest(t, twoEntries)
	m, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, m.Entries, 2)

	// file order, not sorted order
	assert.Equal(t, "diagnosis.json", m.Entries[0].OutputFile)
	assert.Equal(t, "assessment.json", m.Entries[1].OutputFile)

	assert.Equal(t, filepath.Join(dir, "assessment.json"), m.OutputPath(m.Entries[1]))
	assert.Equal(t, "sheet-a", m.Entries[1].SourceSpreadsheetID)
	assert.Equal(t, vocab.Metadata{
		NamespacePrefix: "ex",
		NamespaceURL:    "https://example.org/vocab/assessment/",
		VocabularyName:  "Example assessment terms",
		Version:         "2.1.0",
	}, m.Entries[1].Metadata())

	e, ok := m.Entry("diagnosis.json")
	assert.True(t, ok)
	assert.Equal(t, "sheet-b", e.SourceSpreadsheetID)
	_, ok = m.Entry("missing.json")
	assert.False(t, ok)
}

func TestLoad_MissingPaths(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		setup   func(t *testing.T) string
		wantErr error
	}{
		"directory does not exist": {
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nonexistent")
			},
			wantErr: ErrDirNotFound,
		},
		"path is a file": {
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "file")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantErr: ErrDirNotFound,
		},
		"manifest missing": {
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: ErrManifestNotFound,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tc.setup(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content      string
		wantContains []string
	}{
		"not json": {
			content:      `{"a.json": `,
			wantContains: []string{"not valid JSON"},
		},
		"array root": {
			content:      `[]`,
			wantContains: []string{"JSON object"},
		},
		"no entries": {
			content:      `{}`,
			wantContains: []string{"no entries"},
		},
		"entry not an object": {
			content:      `{"a.json": "x"}`,
			wantContains: []string{`entry "a.json": must be a JSON object`},
		},
		"missing fields": {
			content:      `{"a.json": {"namespace_prefix": "ex"}}`,
			wantContains: []string{"namespace_url failed 'required'", "version failed 'required'", "source_spreadsheet_id failed 'required'"},
		},
		"bad url and version": {
			content: `{"a.json": {"namespace_prefix": "ex", "namespace_url": "example", "vocabulary_name": "n",
				"version": "latest", "source_spreadsheet_id": "s"}}`,
			wantContains: []string{"namespace_url failed 'url'", "version failed 'semver'"},
		},
		"output file not json": {
			content: `{"a.txt": {"namespace_prefix": "ex", "namespace_url": "https://ex.org/", "vocabulary_name": "n",
				"version": "1.0.0", "source_spreadsheet_id": "s"}}`,
			wantContains: []string{"output_file failed 'endswith=.json'"},
		},
		"output file escapes directory": {
			content: `{"../a.json": {"namespace_prefix": "ex", "namespace_url": "https://ex.org/", "vocabulary_name": "n",
				"version": "1.0.0", "source_spreadsheet_id": "s"}}`,
			wantContains: []string{"output_file failed 'excludes=/'"},
		},
		"output file is the manifest": {
			content: `{"community_terms_manifest.json": {"namespace_prefix": "ex", "namespace_url": "https://ex.org/",
				"vocabulary_name": "n", "version": "1.0.0", "source_spreadsheet_id": "s"}}`,
			wantContains: []string{"output_file failed 'ne=community_terms_manifest.json'"},
		},
		"version wrong type": {
			content: `{"a.json": {"namespace_prefix": "ex", "namespace_url": "https://ex.org/", "vocabulary_name": "n",
				"version": 1, "source_spreadsheet_id": "s"}}`,
			wantContains: []string{`entry "a.json"`, "cannot unmarshal number"},
		},
		"duplicate key": {
			content: `{"a.json": {"namespace_prefix": "ex", "namespace_url": "https://ex.org/", "vocabulary_name": "n",
				"version": "1.0.0", "source_spreadsheet_id": "s"}, "a.json": {}}`,
			wantContains: []string{"duplicate output file"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tc.content))
			require.Error(t, err)
			for _, want := range tc.wantContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParse_ReportsEveryInvalidEntry(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"a.json": {}, "b.json": {}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `entry "a.json"`)
	assert.Contains(t, err.Error(), `entry "b.json"`)
}
