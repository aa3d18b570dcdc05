package generate

import (
	"testing"

	"github.com/neurobagel/communities/internal/cli/shared"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDelimiter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path    string
		flag    *string
		want    rune
		wantErr bool
	}{
		"csv default":          {path: "a.csv", want: ','},
		"tsv default":          {path: "a.TSV", want: '\t'},
		"explicit on tsv wins": {path: "a.tsv", flag: strPtr(";"), want: ';'},
		"tab keyword":          {path: "a.txt", flag: strPtr("tab"), want: '\t'},
		"escaped tab":          {path: "a.txt", flag: strPtr(`\t`), want: '\t'},
		"pipe":                 {path: "a.txt", flag: strPtr("|"), want: '|'},
		"too long":             {path: "a.csv", flag: strPtr("::"), wantErr: true},
		"quote":                {path: "a.csv", flag: strPtr(`"`), wantErr: true},
		"empty":                {path: "a.csv", flag: strPtr(""), wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := newCheckCmd()
			if tt.flag != nil {
				require.NoError(t, cmd.Flags().Set("delimiter", *tt.flag))
			}

			got, err := resolveDelimiter(cmd, tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripBOM(t *testing.T) {
	t.Parallel()

	records := stripBOM([][]string{{"\ufeffID", "Name"}, {"\ufefftrm_1", "Foo"}})
	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "\ufefftrm_1", records[1][0])
	assert.Empty(t, stripBOM(nil))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	rootCmd := newTestRoot()
	Register(rootCmd)

	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["terms"], "Should have 'terms' command")
	assert.True(t, names["namespaces"], "Should have 'namespaces' command")
	assert.True(t, names["check"], "Should have 'check' command")
}

func newTestRoot() *cobra.Command {
	root := &cobra.Command{Use: "test"}
	root.AddGroup(&cobra.Group{ID: shared.GroupGenerate, Title: "Generate:"})
	return root
}

func strPtr(s string) *string {
	return &s
}
