package format

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

type sample struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	IsComplete bool      `json:"isComplete"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
}

type sampleTable []sample

func (s sampleTable) TableHeader() []string { return []string{"ID", "TITLE"} }
func (s sampleTable) TableRows() [][]string {
	out := make([][]string, len(s))
	for i, r := range s {
		out[i] = []string{"#1", r.Title}
	}
	return out
}

func TestWriteEDN(t *testing.T) {
	t.Parallel()

	v := sample{
		ID:         3,
		Title:      `say "hi"`,
		IsComplete: true,
		Tags:       []string{"a", "b"},
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	var buf bytes.Buffer
	if err := WriteEDN(&buf, v, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := `{:created-at #inst "2024-05-01T12:00:00Z" :id 3 :is-complete true :tags ["a" "b"] :title "say \"hi\""}` + "\n"
	if buf.String() != want {
		t.Fatalf("got  %s\nwant %s", buf.String(), want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"xs": []int{1}, "empty": []int{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :xs [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestWrite_Formats(t *testing.T) {
	t.Parallel()

	rows := sampleTable{{Title: "first"}, {Title: "second"}}

	var js bytes.Buffer
	if err := Write(&js, rows, "json", false); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.HasPrefix(js.String(), `[{"id":0,"title":"first"`) {
		t.Fatalf("unexpected json: %s", js.String())
	}

	var tbl bytes.Buffer
	if err := Write(&tbl, rows, "table", false); err != nil {
		t.Fatalf("table: %v", err)
	}
	for _, want := range []string{"TITLE", "first", "second"} {
		if !strings.Contains(tbl.String(), want) {
			t.Fatalf("table output missing %q:\n%s", want, tbl.String())
		}
	}

	if err := Write(&bytes.Buffer{}, map[string]int{}, "table", false); err == nil {
		t.Fatalf("expected error for non-tabular value")
	}
	if err := Write(&bytes.Buffer{}, rows, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
