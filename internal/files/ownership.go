package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// chownToHomeOwner gives path to the owner of the user's home directory
// when the process runs as root and path lies inside that home. This covers
// dev containers where the editor runs as uid 0 over a regular user's files.
func chownToHomeOwner(path string) error {
	if os.Getuid() != 0 {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}
	uid, gid, ok := ownerOf(home)
	if !ok || uid == 0 {
		return nil
	}
	if !within(home, path) {
		return nil
	}
	if err := os.Lchown(path, uid, gid); err != nil {
		return fmt.Errorf("lchown: %w", err)
	}
	return nil
}

func ownerOf(path string) (uid, gid int, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}

// within reports whether path is inside dir.
func within(dir, path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
