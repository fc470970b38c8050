// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package dictionary loads reference sets of known first/last names and
// gender-labeled names from CSV files and answers membership and
// gender-prediction queries. The store is constructed explicitly and injected
// into consumers; it is loaded once and read-only afterwards.
package dictionary

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"namecheck/internal/observability"
)

// Mode controls how membership queries behave when no dictionaries are loaded.
type Mode int

const (
	// ModePermissive accepts every name when dictionaries are unavailable.
	// A configuration or IO failure must not be treated as proof that a
	// name is invalid.
	ModePermissive Mode = iota

	// ModeStrict rejects membership queries when dictionaries are unavailable.
	ModeStrict
)

// validEntry matches name entries allowed into the reference sets:
// lowercase letters, hyphens and apostrophes only.
var validEntry = regexp.MustCompile(`^[a-z\-']+$`)

// Store holds the loaded name reference sets. All entries are lower-cased and
// whitespace-trimmed; membership tests are case-insensitive.
type Store struct {
	firstNames  map[string]bool
	lastNames   map[string]bool
	maleNames   map[string]bool
	femaleNames map[string]bool

	loaded   bool
	mode     Mode
	observer *observability.StandardObserver
}

// NewStore creates an empty, unloaded store.
func NewStore(mode Mode, observer *observability.StandardObserver) *Store {
	return &Store{
		firstNames:  make(map[string]bool),
		lastNames:   make(map[string]bool),
		maleNames:   make(map[string]bool),
		femaleNames: make(map[string]bool),
		mode:        mode,
		observer:    observer,
	}
}

// LoadDir scans a directory for CSV reference files and loads their first
// column into the name sets. Files are bucketed by filename: names containing
// "first" feed the first-name set, "last" the last-name set, and anything else
// feeds both sets (recall over precision). Filenames containing "female" or
// "male" additionally feed the gender sets.
//
// Returns true iff at least one name was loaded. On false the store stays
// unloaded and membership queries fail open (in permissive mode).
func (s *Store) LoadDir(path string) bool {
	finish := s.observer.StartTiming("dictionary", "load_dir", path)

	if path == "" {
		finish(false, map[string]interface{}{"reason": "no path configured"})
		return false
	}

	files, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil || len(files) == 0 {
		finish(false, map[string]interface{}{"reason": "no csv files found"})
		return false
	}

	for _, file := range files {
		names, err := readFirstColumn(file)
		if err != nil {
			// A single unreadable file does not abort the load.
			s.observer.LogOperation(observability.StandardObservabilityData{
				Component: "dictionary",
				Operation: "load_file",
				Subject:   file,
				Success:   false,
				Error:     err.Error(),
			})
			continue
		}

		base := strings.ToLower(filepath.Base(file))
		for _, name := range names {
			switch {
			case strings.Contains(base, "first"):
				s.firstNames[name] = true
			case strings.Contains(base, "last"):
				s.lastNames[name] = true
			default:
				// Unclear file: add to both sets.
				s.firstNames[name] = true
				s.lastNames[name] = true
			}

			// "female" contains "male", so it must be checked first.
			if strings.Contains(base, "female") {
				s.femaleNames[name] = true
			} else if strings.Contains(base, "male") {
				s.maleNames[name] = true
			}
		}
	}

	s.loaded = len(s.firstNames) > 0 || len(s.lastNames) > 0

	finish(s.loaded, map[string]interface{}{
		"files":       len(files),
		"first_names": len(s.firstNames),
		"last_names":  len(s.lastNames),
	})
	return s.loaded
}

// readFirstColumn reads the first column of a CSV file, skipping the header
// row, and returns the valid lower-cased entries.
func readFirstColumn(path string) ([]string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var names []string
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(record[0]))
		if isValidName(name) {
			names = append(names, name)
		}
	}

	return names, nil
}

// isValidName performs basic validation on name data
func isValidName(name string) bool {
	if len(name) < 2 || name == "nan" {
		return false
	}
	return validEntry.MatchString(name)
}

// Loaded reports whether at least one reference set was populated.
func (s *Store) Loaded() bool {
	return s.loaded
}

// IsValidFirstName reports whether name appears in the first-name set.
// When the store is unloaded the result depends on the configured mode.
func (s *Store) IsValidFirstName(name string) bool {
	if !s.loaded {
		return s.mode == ModePermissive
	}
	return s.firstNames[strings.ToLower(strings.TrimSpace(name))]
}

// IsValidLastName reports whether name appears in the last-name set.
// When the store is unloaded the result depends on the configured mode.
func (s *Store) IsValidLastName(name string) bool {
	if !s.loaded {
		return s.mode == ModePermissive
	}
	return s.lastNames[strings.ToLower(strings.TrimSpace(name))]
}

// PredictGender guesses a gender from a first name. Gender-labeled sets are
// consulted first when loaded; a suffix heuristic applies either way. Returns
// "M", "F" or "". No guess is ever forced.
func (s *Store) PredictGender(firstName string) string {
	name := strings.ToLower(strings.TrimSpace(firstName))
	if name == "" {
		return ""
	}

	if s.loaded {
		if s.maleNames[name] {
			return "M"
		}
		if s.femaleNames[name] {
			return "F"
		}
	}

	return suffixGender(name)
}

// suffixGender applies the ending-based heuristic shared by all call sites.
func suffixGender(name string) string {
	femaleEndings := []string{"a", "ia", "ana", "ella", "ina", "lyn", "lynn", "elle"}
	maleEndings := []string{"er", "on", "an", "en", "son"}

	for _, ending := range femaleEndings {
		if strings.HasSuffix(name, ending) {
			return "F"
		}
	}
	for _, ending := range maleEndings {
		if strings.HasSuffix(name, ending) {
			return "M"
		}
	}
	return ""
}

// Stats returns counts of the loaded reference sets.
func (s *Store) Stats() map[string]int {
	return map[string]int{
		"first_names":  len(s.firstNames),
		"last_names":   len(s.lastNames),
		"male_names":   len(s.maleNames),
		"female_names": len(s.femaleNames),
	}
}

// Contains reports raw membership in the given set ("first" or "last")
// without the unloaded-mode fallback. Exposed for the enrichment layer.
func (s *Store) Contains(set, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	switch set {
	case "first":
		return s.firstNames[name]
	case "last":
		return s.lastNames[name]
	}
	return false
}

// Names returns a snapshot of a reference set. Used by the enrichment layer
// for fuzzy suggestions; the returned slice is a copy.
func (s *Store) Names(set string) []string {
	var source map[string]bool
	switch set {
	case "first":
		source = s.firstNames
	case "last":
		source = s.lastNames
	default:
		return nil
	}

	names := make([]string, 0, len(source))
	for name := range source {
		names = append(names, name)
	}
	return names
}
