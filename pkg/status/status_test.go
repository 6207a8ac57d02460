package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/srcpatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestManager_ReadFile(t *testing.T) {
	ctx := testContext(t)
	m := New()

	path := filepath.Join(t.TempDir(), "a.js")
	require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o644))

	got, err := m.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1;\n", string(got))

	_, err = m.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestManager_WriteFileAtomic(t *testing.T) {
	ctx := testContext(t)
	m := New()

	t.Run("replaces_content_and_keeps_mode", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.js")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		require.NoError(t, m.WriteFileAtomic(ctx, path, []byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		// no temp files left behind
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("writes_through_symlink", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "target.js")
		link := filepath.Join(dir, "ReactFiberWorkLoop.js")
		require.NoError(t, os.WriteFile(target, []byte("old"), 0o644))
		require.NoError(t, os.Symlink(target, link))

		require.NoError(t, m.WriteFileAtomic(ctx, link, []byte("new")))

		got, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))

		info, err := os.Lstat(link)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "link should stay a symlink")
	})

	t.Run("creates_missing_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "b.js")
		require.NoError(t, m.WriteFileAtomic(ctx, path, []byte("b")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "b", string(got))
	})

	t.Run("missing_directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope", "c.js")
		err := m.WriteFileAtomic(ctx, path, []byte("c"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "creating temp file")
	})
}

func TestDefaultFormatter(t *testing.T) {
	f := NewDefaultFormatter()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "applied",
			got:  f.FormatRuleOutcome(text.RuleOutcome{Rule: "guard", Applied: true, LinesAdded: 5, LinesRemoved: 1}),
			want: "📝 Applied guard (+5 -1)",
		},
		{
			name: "skipped",
			got:  f.FormatRuleOutcome(text.RuleOutcome{Rule: "guard"}),
			want: "👍 Skipped guard (pattern not found)",
		},
		{
			name: "modified",
			got:  f.FormatSummary("a.js", 2, 2, StatusModified),
			want: "Successfully patched a.js (2/2 rules applied)",
		},
		{
			name: "unchanged",
			got:  f.FormatSummary("a.js", 0, 2, StatusUnchanged),
			want: "a.js already up to date (0/2 rules applied)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
