// Package storage keeps uploaded files on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Disk moves files from TmpDir, where uploads land, to UploadDir.
type Disk struct {
	TmpDir    string
	UploadDir string
}

func NewDisk(tmpDir, uploadDir string) (*Disk, error) {
	for _, dir := range []string{tmpDir, uploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &Disk{TmpDir: tmpDir, UploadDir: uploadDir}, nil
}

func (d *Disk) SaveFile(_ context.Context, file string) (string, error) {
	name := filepath.Base(file)
	if err := os.Rename(filepath.Join(d.TmpDir, name), filepath.Join(d.UploadDir, name)); err != nil {
		return "", err
	}
	return name, nil
}

// DeleteFile removes an uploaded file. A missing file is not an error.
func (d *Disk) DeleteFile(_ context.Context, file string) error {
	err := os.Remove(filepath.Join(d.UploadDir, filepath.Base(file)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
