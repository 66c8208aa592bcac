// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/angelosalatino/dblp-parser/pkg/dblp"
)

// JSONL writes each record as one JSON object per line.
type JSONL struct {
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
}

// NewJSONL creates (or truncates) the output file at path.
func NewJSONL(path string) (*JSONL, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	buf := bufio.NewWriter(f)
	return &JSONL{f: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Write appends one record line.
func (s *JSONL) Write(rec dblp.Record) error {
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return nil
}

// Close flushes the buffer and closes the file.
func (s *JSONL) Close() error {
	if err := s.buf.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	return s.f.Close()
}
