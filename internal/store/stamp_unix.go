//go:build unix

package store

import (
	"fmt"
	"os"
	"syscall"
)

// fileID identifies the file behind fi. Save replaces the document by
// rename, so each save produces a new inode.
func fileID(fi os.FileInfo) string {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d.%d", st.Dev, st.Ino)
}
