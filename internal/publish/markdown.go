package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"listboard/internal/model"
)

type RenderOptions struct {
	// Completed includes checked-off todos; they are skipped otherwise.
	Completed bool
	// Now stamps the document header. Zero means time.Now.
	Now time.Time
}

// RenderNotesMarkdown writes notes in stored order, one section per note.
func RenderNotesMarkdown(notes []model.Note, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Notes")
	writeLn("")
	writeLn("_Published " + stamp(opt) + "_")
	writeLn("")
	if len(notes) == 0 {
		writeLn("(no notes)")
		return buf.String()
	}
	for _, n := range notes {
		writeLn("## " + oneLine(n.Title))
		writeLn("")
		if body := strings.TrimSpace(n.Content); body != "" {
			writeLn(body)
			writeLn("")
		}
	}
	return buf.String()
}

// RenderTodosMarkdown writes todos in stored order as a GFM task list.
func RenderTodosMarkdown(todos []model.Todo, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Todos")
	writeLn("")
	writeLn("_Published " + stamp(opt) + "_")
	writeLn("")
	n := 0
	for _, t := range todos {
		if t.IsComplete && !opt.Completed {
			continue
		}
		box := "[ ]"
		if t.IsComplete {
			box = "[x]"
		}
		imp := t.Importance
		if imp == "" {
			imp = model.ImportanceMinor
		}
		writeLn(fmt.Sprintf("- %s %s `%s`", box, oneLine(t.Description), imp.Label()))
		n++
	}
	if n == 0 {
		writeLn("(no todos)")
	}
	return buf.String()
}

func stamp(opt RenderOptions) string {
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC().Format(time.RFC3339)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
