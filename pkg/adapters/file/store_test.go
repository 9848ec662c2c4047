package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/autostate/autostate/pkg/adapters/file"
	"github.com/autostate/autostate/pkg/domain"
	"github.com/autostate/autostate/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunModelStoreContract(t, store)
}

func TestFileStore_DefaultBasePath(t *testing.T) {
	store := file.New("")
	assert.Equal(t, filepath.Join(".autostate", "models"), store.BasePath)
}

func TestFileStore_ListIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	m := domain.Build("Door", []domain.Transition{
		{State: "closed", Event: "open", Action: "unlock", NextState: "opened"},
	})
	m.ID = "door"
	require.NoError(t, store.Put(ctx, m))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-door-123.json"), []byte("{}"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.json"), 0755))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"door"}, ids)
}

func TestFileStore_GetCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))

	_, err := store.Get(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrModelNotFound)
}

func TestFileStore_PutRejectsEmptyID(t *testing.T) {
	store := file.New(t.TempDir())
	m := domain.Build("Anonymous", []domain.Transition{
		{State: "a", Event: "go", NextState: "b"},
	})
	m.ID = ""
	require.Error(t, store.Put(context.Background(), m))
}
