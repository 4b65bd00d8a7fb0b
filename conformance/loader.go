// Package conformance runs the YAML-driven language test corpus under
// testdata/ against a fresh engine per case.
package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadedCase pairs a case with the file it came from, for test names.
type LoadedCase struct {
	File  string
	Suite Suite
	Case  Case
}

// LoadAll reads every .yaml suite under dir.
func LoadAll(dir string) ([]LoadedCase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("conformance: %w", err)
	}
	var loaded []LoadedCase
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		suite, err := loadSuite(path)
		if err != nil {
			return nil, fmt.Errorf("conformance: %s: %w", entry.Name(), err)
		}
		for _, c := range suite.Tests {
			loaded = append(loaded, LoadedCase{File: entry.Name(), Suite: suite, Case: c})
		}
	}
	return loaded, nil
}

func loadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, err
	}
	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return Suite{}, err
	}
	return suite, nil
}
