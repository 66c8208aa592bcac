// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report builds the run summary artifact written next to a parse
// run's output: what was extracted, from where, and how much of it.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

// Summary describes one extraction run.
type Summary struct {
	Input           string         `yaml:"input" json:"input"`
	Output          string         `yaml:"output,omitempty" json:"output,omitempty"`
	Format          string         `yaml:"format" json:"format"`
	Features        []string       `yaml:"features" json:"features"`
	IncludeKeyMdate bool           `yaml:"include_key_mdate" json:"include_key_mdate"`
	Year            string         `yaml:"year,omitempty" json:"year,omitempty"`
	Records         int            `yaml:"records" json:"records"`
	RecordsByType   map[string]int `yaml:"records_by_type" json:"records_by_type"`
	Started         time.Time      `yaml:"started" json:"started"`
	Duration        string         `yaml:"duration" json:"duration"`
}

// New returns a summary with counters initialized and Started set to now.
func New(input, output, format string) *Summary {
	return &Summary{
		Input:         input,
		Output:        output,
		Format:        format,
		RecordsByType: make(map[string]int),
		Started:       time.Now().UTC(),
	}
}

// Add counts one emitted record.
func (s *Summary) Add(rec dblp.Record) {
	s.Records++
	s.RecordsByType[rec.Type()]++
}

// Finish records the elapsed time since Started.
func (s *Summary) Finish() {
	s.Duration = time.Since(s.Started).Round(time.Millisecond).String()
}

// WriteYAML saves the summary to path as YAML.
func (s *Summary) WriteYAML(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteJSON saves the summary to path as indented JSON.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
