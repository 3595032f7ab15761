package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeItems() []grabbr.Item {
	return []grabbr.Item{
		&grabbr.QuestionGroup{
			Question: "What carries oxygen?",
			Choices:  []grabbr.Choice{{Text: "B) Red cells", IsAnswer: true}},
		},
	}
}

func TestExportStore_SaveWritesToTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewExportStore(base, "output", grabbr.JSONExporter{})

	err := store.Save(context.Background(), "https://example.com/quiz/ch1", storeItems())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "output.tmp", "quiz", "ch1.json"))
	require.NoError(t, err, "file should exist in temp directory")

	_, err = os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestExportStore_CommitReplacesFinalDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	stale := filepath.Join(base, "output", "stale.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte("[]"), 0644))

	store := fs.NewExportStore(base, "output", grabbr.JSONExporter{})
	require.NoError(t, store.Save(context.Background(), "https://example.com/quiz", storeItems()))

	require.NoError(t, store.Commit())

	data, err := os.ReadFile(filepath.Join(store.Dir(), "quiz.json"))
	require.NoError(t, err)
	items, err := grabbr.DecodeItems(data)
	require.NoError(t, err)
	assert.Equal(t, storeItems(), items)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "previous exports should be replaced")
	_, err = os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportStore_CommitWithNothingSaved(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewExportStore(base, "output", grabbr.JSONExporter{})

	require.NoError(t, store.Commit())

	info, err := os.Stat(filepath.Join(base, "output"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportStore_AbortCleansUpTempDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewExportStore(base, "output", grabbr.JSONExporter{})
	require.NoError(t, store.Save(context.Background(), "https://example.com/quiz", storeItems()))

	require.NoError(t, store.Abort())

	_, err := os.Stat(filepath.Join(base, "output.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	store := fs.NewExportStore(t.TempDir(), "output", grabbr.JSONExporter{})

	err := store.Save(context.Background(), "https://example.com/../../../etc/passwd", storeItems())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path traversal")
}
