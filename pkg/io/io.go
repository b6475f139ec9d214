// Package io wraps the handful of filesystem calls the crawler (C5) makes,
// so tests can substitute a fake tree instead of touching disk.
package io

import (
	"os"
)

var _ FileIO = (*MediaFileSystem)(nil)

// MediaFileSystem is the default FileIO, backed directly by the os package.
type MediaFileSystem struct{}

// Stat wraps os.Stat.
func (o *MediaFileSystem) Stat(target string) (os.FileInfo, error) {
	return os.Stat(target)
}

// Open wraps os.Open.
func (o *MediaFileSystem) Open(name string) (*os.File, error) {
	return os.Open(name)
}

// ReadDir wraps os.ReadDir.
func (o *MediaFileSystem) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}
