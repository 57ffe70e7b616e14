package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"listboard/internal/store"
)

type WriteOptions struct {
	Completed bool
	// HTML additionally writes index.html with both lists.
	HTML      bool
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// Write publishes a snapshot as notes.md and todos.md (and index.html) under toDir.
// These files are derived output; the database stays canonical.
func Write(snap store.Snapshot, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	ropt := RenderOptions{Completed: opt.Completed}
	notesMD := RenderNotesMarkdown(snap.Notes, ropt)
	todosMD := RenderTodosMarkdown(snap.Todos, ropt)

	files := []struct {
		name string
		body string
	}{
		{"notes.md", notesMD},
		{"todos.md", todosMD},
	}
	if opt.HTML {
		page, err := RenderHTML("listboard", notesMD, todosMD)
		if err != nil {
			return WriteResult{}, err
		}
		files = append(files, struct {
			name string
			body string
		}{"index.html", page})
	}

	// Check everything first so a refusal writes nothing.
	if !opt.Overwrite {
		for _, f := range files {
			p := filepath.Join(toDir, f.name)
			if _, err := os.Stat(p); err == nil {
				return WriteResult{}, errors.New("file exists (use --overwrite): " + p)
			}
		}
	}
	var written []string
	for _, f := range files {
		p := filepath.Join(toDir, f.name)
		if err := os.WriteFile(p, []byte(f.body), 0o644); err != nil {
			return WriteResult{Written: written}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}
