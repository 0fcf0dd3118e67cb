package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		opts     []Option
		expected []string
	}{
		{
			name: "nested java files in lexical order",
			files: map[string]string{
				"com/acme/b/B.java": "",
				"com/acme/a/A.java": "",
				"Root.java":         "",
			},
			expected: []string{"Root.java", "com/acme/a/A.java", "com/acme/b/B.java"},
		},
		{
			name: "other extensions ignored",
			files: map[string]string{
				"com/acme/A.java":      "",
				"com/acme/notes.txt":   "",
				"com/acme/A.java.orig": "",
			},
			expected: []string{"com/acme/A.java"},
		},
		{
			name: "custom suffix",
			files: map[string]string{
				"com/acme/A.kt":   "",
				"com/acme/B.java": "",
			},
			opts:     []Option{WithSuffix(".kt")},
			expected: []string{"com/acme/A.kt"},
		},
		{
			name:     "empty tree",
			files:    map[string]string{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)

			files, err := New(tt.opts...).Scan(root)
			require.NoError(t, err)

			var rel []string
			for _, f := range files {
				r, err := filepath.Rel(root, f)
				require.NoError(t, err)
				rel = append(rel, filepath.ToSlash(r))
			}
			assert.Equal(t, tt.expected, rel)
		})
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := New().Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceRootMissing)
}

func TestScan_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "A.java")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := New().Scan(path)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestWithSuffix_EmptyKeepsDefault(t *testing.T) {
	s := New(WithSuffix(""))
	assert.Equal(t, DefaultSuffix, s.Suffix())
}

func TestScan_Symlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, root, map[string]string{"com/acme/A.java": ""})
	writeFiles(t, outside, map[string]string{"Shared.java": "", "lib.java/Inner.java": ""})

	link := func(target, name string) {
		if err := os.Symlink(target, filepath.Join(root, name)); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}
	link(filepath.Join(outside, "Shared.java"), "com/acme/Shared.java")
	link(filepath.Join(outside, "lib.java"), "com/acme/lib.java")
	link(filepath.Join(outside, "Gone.java"), "com/acme/Broken.java")

	var skipped []string
	files, err := New(WithSkipHandler(func(path string, err error) {
		skipped = append(skipped, filepath.Base(path))
	})).Scan(root)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"com/acme/A.java", "com/acme/Shared.java"}, rel)
	assert.Equal(t, []string{"Broken.java"}, skipped)
}
