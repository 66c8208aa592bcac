// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"golang.org/x/text/encoding/charmap"
)

// Options configures a Parser.
type Options struct {
	// Features selects the fields to extract. Empty means the full catalog.
	// Unrecognized names are dropped with a warning on Diagnostics.
	Features []string

	// IncludeKeyMdate adds the key and mdate element attributes to each
	// record.
	IncludeKeyMdate bool

	// Year, when non-empty, drops records whose year field differs from it
	// before they are emitted. Relative order of the rest is preserved.
	Year string

	// Diagnostics receives warnings (missing DTD, discarded features).
	// Defaults to io.Discard.
	Diagnostics io.Writer
}

// Parser is a pull iterator over the records of a DBLP dump. It decodes one
// publication element at a time and discards the subtree once the record is
// returned, so memory use does not grow with the dump.
type Parser struct {
	dec             *xml.Decoder
	closers         []io.Closer
	features        map[string]bool
	includeKeyMdate bool
	year            string
	rootSeen        bool
}

// New opens the dump at path and returns a parser positioned before the
// first record. Inputs ending in .gz are decompressed transparently. The
// dump's entity declarations are read from dblp.dtd in the same directory
// when present.
func New(path string, opts Options) (*Parser, error) {
	diag := opts.Diagnostics
	if diag == nil {
		diag = io.Discard
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}

	var r io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		zr, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		r = zr
		closers = append([]io.Closer{zr}, closers...)
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	dec.Entity = loadEntities(filepath.Dir(path), diag)

	return &Parser{
		dec:             dec,
		closers:         closers,
		features:        refineFeatures(opts.Features, diag),
		includeKeyMdate: opts.IncludeKeyMdate,
		year:            opts.Year,
	}, nil
}

// Close releases the underlying input stream. The parser cannot be reused.
func (p *Parser) Close() error {
	var first error
	for _, c := range p.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Next returns the next record in document order, or io.EOF once the dump
// is exhausted. Malformed or truncated input surfaces the decoder's error.
func (p *Parser) Next() (Record, error) {
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		// The first start element is the document root; descend into it.
		if !p.rootSeen {
			p.rootSeen = true
			continue
		}

		if !recordKinds[start.Name.Local] {
			if err := p.dec.Skip(); err != nil {
				return nil, err
			}
			continue
		}

		rec, err := p.extract(start)
		if err != nil {
			return nil, err
		}
		if p.year != "" && rec.Year() != p.year {
			continue
		}
		return rec, nil
	}
}

// extract consumes the element started by start and assembles its record.
// It returns once the element's end tag is read, leaving the decoder at the
// next sibling.
func (p *Parser) extract(start xml.StartElement) (Record, error) {
	rec := Record{"type": start.Name.Local}
	if p.includeKeyMdate {
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "key":
				rec["key"] = attr.Value
			case "mdate":
				rec["mdate"] = attr.Value
			}
		}
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if !p.features[name] {
				if err := p.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			text, err := p.flattenText()
			if err != nil {
				return nil, err
			}
			switch name {
			case "title":
				text = strings.ReplaceAll(text, "\n", "")
			case "pages":
				text = CountPages(text)
			}
			if text == "" {
				continue
			}

			if fieldCatalog[name] == listField {
				prev, _ := rec[name].([]string)
				rec[name] = append(prev, text)
			} else {
				rec[name] = text
			}

		case xml.EndElement:
			return rec, nil
		}
	}
}

// flattenText reads to the end of the current element and returns its
// character data with nested markup removed. Titles routinely contain
// <i>, <sub> and similar formatting tags; the flattened text is the value.
func (p *Parser) flattenText() (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := p.dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// charsetReader decodes the legacy encodings DBLP dumps declare. The
// published dump is ISO-8859-1.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", charset)
}
