// Package metadata writes the per-run summary file into the target root.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the summary file written inside the target root.
const DefaultFileName = "metadata.json"

// Record is the on-disk summary of one run.
type Record struct {
	GameNames     []string `json:"gameNames"`
	NumberOfGames int      `json:"numberOfGames"`
}

// ReservedNames lists the entries Write creates in the target root for
// fileName, so no copied game may use them.
func ReservedNames(fileName string) []string {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return []string{fileName, tempName(fileName)}
}

func tempName(fileName string) string {
	return fileName + ".tmp"
}

// NewRecord builds a Record for names. A nil slice is stored as empty so it
// encodes as [] rather than null.
func NewRecord(names []string) Record {
	if names == nil {
		names = []string{}
	}
	return Record{GameNames: names, NumberOfGames: len(names)}
}

// Write stores the record for names as fileName inside targetRoot and
// returns the file's path. The target root must already exist. Data goes to
// a temp file first and is renamed into place.
func Write(targetRoot, fileName string, names []string) (string, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}

	info, err := os.Stat(targetRoot)
	if err != nil {
		return "", fmt.Errorf("target root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("target root %s is not a directory", targetRoot)
	}

	data, err := json.Marshal(NewRecord(names))
	if err != nil {
		return "", fmt.Errorf("marshaling metadata: %w", err)
	}

	path := filepath.Join(targetRoot, fileName)
	tmp := filepath.Join(targetRoot, tempName(fileName))
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("writing metadata temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming metadata file: %w", err)
	}
	return path, nil
}

// Read parses a metadata file.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return r, nil
}
