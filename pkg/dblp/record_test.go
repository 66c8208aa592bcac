package dblp

import (
	"reflect"
	"testing"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := Record{
		"type":   "article",
		"key":    "journals/x/Y21",
		"author": []string{"A", "B"},
		"title":  "T",
		"year":   "2021",
	}

	line, err := rec.MarshalLine()
	if err != nil {
		t.Fatalf("MarshalLine: %v", err)
	}
	got, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !reflect.DeepEqual(rec, got) {
		t.Errorf("round trip = %#v, want %#v", got, rec)
	}
}

func TestParseLineRejectsNonStrings(t *testing.T) {
	if _, err := ParseLine([]byte(`{"year": 2021}`)); err == nil {
		t.Error("expected error for numeric field value")
	}
	if _, err := ParseLine([]byte(`{"author": ["A", 2]}`)); err == nil {
		t.Error("expected error for numeric list element")
	}
}

func TestRecordAccessors(t *testing.T) {
	rec := Record{
		"type":   "book",
		"author": []string{"A", "B"},
		"title":  "T",
	}

	if got := rec.Type(); got != "book" {
		t.Errorf("Type() = %q, want %q", got, "book")
	}
	if got := rec.Year(); got != "" {
		t.Errorf("Year() = %q, want empty", got)
	}
	if got := rec.Strings("author"); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Strings(author) = %v", got)
	}
	if got := rec.Strings("title"); !reflect.DeepEqual(got, []string{"T"}) {
		t.Errorf("Strings(title) = %v", got)
	}
	if got := rec.Strings("journal"); got != nil {
		t.Errorf("Strings(journal) = %v, want nil", got)
	}
}

func TestFeatureCatalog(t *testing.T) {
	if got := len(Features()); got != 23 {
		t.Errorf("len(Features()) = %d, want 23", got)
	}
	if got := len(RecordKinds()); got != 10 {
		t.Errorf("len(RecordKinds()) = %d, want 10", got)
	}
	for _, name := range []string{"author", "cite", "editor", "ee"} {
		if !IsListField(name) {
			t.Errorf("IsListField(%q) = false, want true", name)
		}
	}
	if IsListField("title") {
		t.Error("IsListField(title) = true, want false")
	}
}
