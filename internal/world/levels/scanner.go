package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry represents a discoverable level in the data directory
type Entry struct {
	Name string // Display name (file name without extension)
	Path string // Path to the level JSON file
}

// ScanDirectory scans a directory for level files.
// Returns one Entry per JSON file, sorted by name.
func ScanDirectory(dataPath string) ([]Entry, error) {
	entries, err := os.ReadDir(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var found []Entry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Skip hidden files and anything that is not JSON
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}

		found = append(found, Entry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dataPath, name),
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// Find returns the entry with the given name
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
