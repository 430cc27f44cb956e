package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"appointment-booking-api/internal/storage"
)

func TestDiskSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	d, err := storage.NewDisk(filepath.Join(root, "tmp"), filepath.Join(root, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(d.TmpDir, "avatar.png"), []byte("png"), 0o644))

	name, err := d.SaveFile(ctx, "avatar.png")
	require.NoError(t, err)
	require.Equal(t, "avatar.png", name)
	require.FileExists(t, filepath.Join(d.UploadDir, "avatar.png"))
	require.NoFileExists(t, filepath.Join(d.TmpDir, "avatar.png"))

	require.NoError(t, d.DeleteFile(ctx, "avatar.png"))
	require.NoFileExists(t, filepath.Join(d.UploadDir, "avatar.png"))

	// deleting again is fine
	require.NoError(t, d.DeleteFile(ctx, "avatar.png"))
}

func TestDiskSaveMissing(t *testing.T) {
	root := t.TempDir()
	d, err := storage.NewDisk(filepath.Join(root, "tmp"), filepath.Join(root, "uploads"))
	require.NoError(t, err)

	_, err = d.SaveFile(context.Background(), "nope.png")
	require.Error(t, err)
}

func TestDiskRejectsTraversal(t *testing.T) {
	root := t.TempDir()
	d, err := storage.NewDisk(filepath.Join(root, "tmp"), filepath.Join(root, "uploads"))
	require.NoError(t, err)

	secret := filepath.Join(root, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o644))

	require.NoError(t, d.DeleteFile(context.Background(), "../secret.txt"))
	require.FileExists(t, secret)
}
