// pattern: Imperative Shell

// Package copier replaces a destination directory with a full copy of a
// source tree.
package copier

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
)

var options = copy.Options{
	// Keep symlinks as links rather than copying what they point to.
	OnSymlink: func(string) copy.SymlinkAction {
		return copy.Shallow
	},
	PreserveTimes: true,
}

// CopyOverwrite removes dst (file or directory) and copies the tree at src to
// it. The source is checked before anything is removed, so a missing source
// leaves dst untouched. A symlinked src is resolved and its target copied;
// links inside the tree are kept as links.
func CopyOverwrite(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", src)
	}
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("resolving source %s: %w", src, err)
	}

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("removing %s: %w", dst, err)
	}

	if err := copy.Copy(root, dst, options); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}
