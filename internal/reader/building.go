package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
)

// BuildingName derives a display name from a meter export file name, e.g.
// "north_hall_usage.csv" becomes "North Hall".
func BuildingName(fileName string) string {
	base := filepath.Base(fileName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ReplaceAll(stem, "_usage", "")
	stem = strings.ReplaceAll(stem, "_", " ")
	return titleCase(stem)
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "o'neil HALL 2b" becomes "O'Neil Hall 2B".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Discover returns the regular *.csv files directly inside dir. With sorted
// set they come back in lexical file name order, otherwise in directory
// listing order. A missing directory yields no files.
func Discover(dir string, sorted bool) ([]string, error) {
	f, err := os.Open(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", dir)
	}

	// File.ReadDir keeps the order the filesystem reports, unlike os.ReadDir
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if ok, _ := filepath.Match("*.csv", e.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	if sorted {
		slices.Sort(files)
	}
	return files, nil
}
