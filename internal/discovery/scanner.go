// pattern: Imperative Shell

package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gamesync/internal/logging"
)

// Scanner finds game directories directly under a source root.
type Scanner struct {
	matchToken string
	stripToken string
	logger     *logging.ScopedLogger
}

// NewScanner creates a scanner matching child names that contain matchToken
// (case-insensitive) and naming outputs by removing stripToken.
func NewScanner(matchToken, stripToken string, logger *logging.ScopedLogger) *Scanner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Scanner{
		matchToken: matchToken,
		stripToken: stripToken,
		logger:     logger,
	}
}

// Scan lists the immediate children of root and returns every directory whose
// name contains the match token, paired with its output name. Only one level
// is read. Order follows os.ReadDir, which sorts by file name.
func (s *Scanner) Scan(root string) ([]GameDir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	marker := strings.ToLower(s.matchToken)
	dirs := []GameDir{}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.Contains(strings.ToLower(name), marker) {
			continue
		}

		path := filepath.Join(root, name)
		if !isDir(path, entry) {
			s.logger.Debug("skipping non-directory match", "path", path)
			continue
		}

		dir := GameDir{Path: path, Name: TransformName(path, s.stripToken)}
		s.logger.Debug("matched directory", "path", dir.Path, "name", dir.Name)
		dirs = append(dirs, dir)
	}

	return dirs, nil
}

// isDir reports whether entry is a directory, following a symlink one hop.
func isDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
