// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dblp

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dumpHeader = "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
	"<!DOCTYPE dblp SYSTEM \"dblp.dtd\">\n"

// writeDump writes a dump with the given record elements into a temp
// directory and returns its path.
func writeDump(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dblp.xml")
	content := dumpHeader + "<dblp>\n" + body + "\n</dblp>\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// collect drains the parser over the dump at path.
func collect(t *testing.T, path string, opts Options) []Record {
	t.Helper()
	p, err := New(path, opts)
	require.NoError(t, err)
	defer p.Close()

	var recs []Record
	for {
		rec, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
	return recs
}

func TestDefaultExtraction(t *testing.T) {
	path := writeDump(t, `<article mdate="2021" key="a1"><author>A</author><author>B</author><title>T</title><year>2021</year></article>`)

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, Record{
		"type":   "article",
		"author": []string{"A", "B"},
		"title":  "T",
		"year":   "2021",
	}, recs[0])
}

func TestRecordCountAndTypes(t *testing.T) {
	path := writeDump(t, `
<article key="a"><title>A</title></article>
<inproceedings key="b"><title>B</title></inproceedings>
<proceedings key="c"><title>C</title></proceedings>
<book key="d"><title>D</title></book>
<incollection key="e"><title>E</title></incollection>
<phdthesis key="f"><title>F</title></phdthesis>
<mastersthesis key="g"><title>G</title></mastersthesis>
<www key="h"><title>H</title></www>
<person key="i"><author>I</author></person>
<data key="j"><title>J</title></data>
<unrecognized><title>ignored</title></unrecognized>`)

	recs := collect(t, path, Options{})
	require.Len(t, recs, 10)

	want := []string{"article", "inproceedings", "proceedings", "book",
		"incollection", "phdthesis", "mastersthesis", "www", "person", "data"}
	for i, rec := range recs {
		assert.Equal(t, want[i], rec.Type())
	}
}

func TestFeatureSubset(t *testing.T) {
	path := writeDump(t, `<article key="a"><author>A</author><title>T</title><journal>J</journal><year>2020</year></article>`)

	var diag bytes.Buffer
	recs := collect(t, path, Options{
		Features:    []string{"title", "year", "banana"},
		Diagnostics: &diag,
	})

	require.Len(t, recs, 1)
	assert.Equal(t, Record{"type": "article", "title": "T", "year": "2020"}, recs[0])
	assert.Contains(t, diag.String(), `"banana"`)
}

func TestIncludeKeyMdate(t *testing.T) {
	path := writeDump(t, `<article mdate="2021-03-01" key="journals/x/Y21"><title>T</title></article>`)

	recs := collect(t, path, Options{IncludeKeyMdate: true})
	require.Len(t, recs, 1)
	assert.Equal(t, "journals/x/Y21", recs[0].Key())
	assert.Equal(t, "2021-03-01", recs[0].Mdate())
}

func TestYearFilter(t *testing.T) {
	path := writeDump(t, `
<article key="a"><title>First</title><year>2022</year></article>
<article key="b"><title>Other</title><year>2021</year></article>
<article key="c"><title>Second</title><year>2022</year></article>
<article key="d"><title>NoYear</title></article>`)

	recs := collect(t, path, Options{Year: "2022"})
	require.Len(t, recs, 2)
	assert.Equal(t, "First", recs[0]["title"])
	assert.Equal(t, "Second", recs[1]["title"])
}

func TestTitleMarkupStripped(t *testing.T) {
	path := writeDump(t, `<article key="a"><title>On <i>Fancy</i> Things in H<sub>2</sub>O</title></article>`)

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, "On Fancy Things in H2O", recs[0]["title"])
}

func TestPagesBecomeCount(t *testing.T) {
	path := writeDump(t, `<article key="a"><title>T</title><pages>23-43</pages></article>`)

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, "21", recs[0]["pages"])
}

func TestEmptyValuesSkipped(t *testing.T) {
	path := writeDump(t, `<article key="a"><title>T</title><ee></ee><pages>I-XXI</pages></article>`)

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, Record{"type": "article", "title": "T"}, recs[0])
}

func TestDTDEntities(t *testing.T) {
	dir := t.TempDir()
	dtd := `<!ELEMENT dblp (article)*>
<!ENTITY uuml "&#252;">
<!ENTITY agrave "&#224;">
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dblp.dtd"), []byte(dtd), 0o644))

	path := filepath.Join(dir, "dblp.xml")
	content := dumpHeader + "<dblp>\n" +
		`<article key="a"><author>J&uuml;rgen</author><title>&agrave; la carte</title></article>` +
		"\n</dblp>\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Jürgen"}, recs[0]["author"])
	assert.Equal(t, "à la carte", recs[0]["title"])
}

func TestMissingDTDWarns(t *testing.T) {
	path := writeDump(t, `<article key="a"><author>J&uuml;rgen</author></article>`)

	var diag bytes.Buffer
	recs := collect(t, path, Options{Diagnostics: &diag})

	require.Len(t, recs, 1)
	// HTML entity fallback still resolves the Latin-1 names.
	assert.Equal(t, []string{"Jürgen"}, recs[0]["author"])
	assert.Contains(t, diag.String(), "dblp.dtd")
}

func TestLatin1Input(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dblp.xml")
	content := []byte(dumpHeader + "<dblp>\n<article key=\"a\"><author>M")
	content = append(content, 0xFC) // "ü" in ISO-8859-1
	content = append(content, []byte("ller</author></article>\n</dblp>\n")...)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	recs := collect(t, path, Options{})
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Müller"}, recs[0]["author"])
}

func TestGzipInput(t *testing.T) {
	body := `<article key="a"><author>A</author><title>T</title><year>2021</year></article>
<book key="b"><title>B</title><year>2020</year></book>`
	plainPath := writeDump(t, body)

	gzPath := filepath.Join(t.TempDir(), "dblp.xml.gz")
	f, err := os.Create(gzPath)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(dumpHeader + "<dblp>\n" + body + "\n</dblp>\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	plain := collect(t, plainPath, Options{})
	gz := collect(t, gzPath, Options{})
	assert.Equal(t, plain, gz)
}

func TestMissingInput(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.xml"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTruncatedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dblp.xml")
	content := dumpHeader + "<dblp>\n<article key=\"a\"><author>A"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := New(path, Options{})
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Next()
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
}

func TestMalformedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dblp.xml")
	content := dumpHeader + "<dblp>\n<article key=\"a\"></book>\n</dblp>\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := New(path, Options{})
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Next()
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "syntax")
}
