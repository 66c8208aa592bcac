// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const dtdFile = "dblp.dtd"

// entityDecl matches <!ENTITY name "replacement"> declarations in the DTD.
var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%]+)\s+"([^"]*)"\s*>`)

// charRef matches a numeric character reference in entity replacement text.
var charRef = regexp.MustCompile(`&#(x?[0-9a-fA-F]+);`)

// loadEntities builds the decoder's entity table. dblp.dtd is expected next
// to the dump, as on dblp.org; without it the HTML entity set still covers
// the Latin-1 names the dump uses, but a warning is emitted because exotic
// entities would then fail to resolve.
func loadEntities(dir string, diag io.Writer) map[string]string {
	entities := make(map[string]string, len(xml.HTMLEntity))
	for name, value := range xml.HTMLEntity {
		entities[name] = value
	}

	data, err := os.ReadFile(filepath.Join(dir, dtdFile))
	if err != nil {
		fmt.Fprintf(diag, "warning: %s not found in the directory of the source file, falling back to the HTML entity set\n", dtdFile)
		return entities
	}

	for _, m := range entityDecl.FindAllStringSubmatch(string(data), -1) {
		entities[m[1]] = resolveCharRefs(m[2])
	}
	return entities
}

// resolveCharRefs expands numeric character references inside replacement
// text (the DTD defines e.g. uuml as "&#252;") so the decoder substitutes
// the literal rune.
func resolveCharRefs(s string) string {
	return charRef.ReplaceAllStringFunc(s, func(ref string) string {
		num := ref[2 : len(ref)-1]
		base := 10
		if strings.HasPrefix(num, "x") {
			num = num[1:]
			base = 16
		}
		n, err := strconv.ParseInt(num, base, 32)
		if err != nil {
			return ref
		}
		return string(rune(n))
	})
}
