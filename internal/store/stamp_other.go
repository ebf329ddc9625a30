//go:build !unix

package store

import "os"

// fileID is empty where the platform exposes no inode; the stamp then
// relies on modification time and size alone.
func fileID(os.FileInfo) string { return "" }
