// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dblp streams bibliographic records out of the DBLP XML dump.
//
// The dump is a single multi-gigabyte document whose root holds one child
// element per publication. Parser walks it with a pull decoder, so memory
// stays bounded no matter how large the dump grows. Each publication becomes
// a flat Record suitable for JSON Lines output or tabular accumulation.
//
// The dumps are published at https://dblp.org/xml/ together with dblp.dtd,
// which defines the character entities the document uses.
package dblp

import (
	"fmt"
	"io"
	"sort"
)

// fieldKind says whether a field holds one value or many per record.
type fieldKind int

const (
	scalarField fieldKind = iota
	listField
)

// recordKinds is the set of record-level element names in the dump.
var recordKinds = map[string]bool{
	"article":       true,
	"inproceedings": true,
	"proceedings":   true,
	"book":          true,
	"incollection":  true,
	"phdthesis":     true,
	"mastersthesis": true,
	"www":           true,
	"person":        true,
	"data":          true,
}

// fieldCatalog maps each extractable field name to its kind. Fields like
// author or ee repeat within one record and accumulate into lists; the rest
// hold a single value.
var fieldCatalog = map[string]fieldKind{
	"address":   scalarField,
	"author":    listField,
	"booktitle": scalarField,
	"cdrom":     scalarField,
	"chapter":   scalarField,
	"cite":      listField,
	"crossref":  scalarField,
	"editor":    listField,
	"ee":        listField,
	"isbn":      scalarField,
	"journal":   scalarField,
	"month":     scalarField,
	"note":      scalarField,
	"number":    scalarField,
	"pages":     scalarField,
	"publisher": scalarField,
	"publnr":    scalarField,
	"school":    scalarField,
	"series":    scalarField,
	"title":     scalarField,
	"url":       scalarField,
	"volume":    scalarField,
	"year":      scalarField,
}

// RecordKinds returns the record-level element names in sorted order.
func RecordKinds() []string {
	kinds := make([]string, 0, len(recordKinds))
	for k := range recordKinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Features returns the extractable field names in sorted order.
func Features() []string {
	names := make([]string, 0, len(fieldCatalog))
	for name := range fieldCatalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsListField reports whether the named field accumulates multiple values
// per record.
func IsListField(name string) bool {
	return fieldCatalog[name] == listField
}

// refineFeatures turns the requested field names into the set the parser
// will extract. Names outside the catalog are dropped with a warning on
// diag rather than rejected: requesting a subset is a filter, not an
// assertion. An empty request selects the full catalog.
func refineFeatures(requested []string, diag io.Writer) map[string]bool {
	selected := make(map[string]bool, len(fieldCatalog))
	if len(requested) == 0 {
		for name := range fieldCatalog {
			selected[name] = true
		}
		return selected
	}

	for _, name := range requested {
		if _, ok := fieldCatalog[name]; !ok {
			fmt.Fprintf(diag, "warning: discarding feature %q: it cannot be extracted from the DBLP dump\n", name)
			continue
		}
		selected[name] = true
	}
	return selected
}
