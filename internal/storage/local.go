// Package storage keeps uploaded deal images and hands back public URLs.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IDGenerator yields unique, time-ordered ids used as file names.
type IDGenerator interface {
	Next() int64
}

// LocalStore writes images to a directory served by the HTTP server under
// /images/.
type LocalStore struct {
	dir       string
	publicURL string
	ids       IDGenerator
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, publicURL string, ids IDGenerator) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &LocalStore{
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		ids:       ids,
	}, nil
}

// Dir returns the directory images are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Writable creates and removes a scratch file in the image directory.
func (s *LocalStore) Writable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, ".writable-*")
	if err != nil {
		return fmt.Errorf("storage dir %s not writable: %w", s.dir, err)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("clean up %s: %w", name, err)
	}
	return nil
}

// Save stores a JPEG under a timestamp-derived name and returns its public URL.
func (s *LocalStore) Save(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("deal_%d.jpg", s.ids.Next())
	path := filepath.Join(s.dir, name)

	// Write then rename so a half-written file is never served.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("store image %s: %w", name, err)
	}

	return s.publicURL + "/images/" + name, nil
}
