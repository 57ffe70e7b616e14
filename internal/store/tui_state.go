package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small UI state for restoring the last screen on relaunch. It lives in
// the data dir so it is scoped per data dir, and callers tolerate missing or invalid data.
type TUIState struct {
	Version int `json:"version"`

	// View is notes|todos.
	View string `json:"view,omitempty"`

	SelectedNoteID int64 `json:"selectedNoteId,omitempty"`
	SelectedTodoID int64 `json:"selectedTodoId,omitempty"`

	// TodoFilter is ALL|MAJOR|MODERATE|MINOR.
	TodoFilter string `json:"todoFilter,omitempty"`
	// TodoSort is none|completed-first|incomplete-first.
	TodoSort string `json:"todoSort,omitempty"`
}

func tuiStatePath(dir string) string {
	return filepath.Join(dir, tuiStateFileName)
}

func LoadTUIState(dir string) (*TUIState, error) {
	if strings.TrimSpace(dir) == "" {
		return &TUIState{Version: 1}, nil
	}
	b, err := os.ReadFile(tuiStatePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TUIState{Version: 1}, nil
		}
		return nil, err
	}
	var st TUIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupt state is treated as missing.
		return &TUIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func SaveTUIState(dir string, st *TUIState) error {
	if st == nil || strings.TrimSpace(dir) == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, "tui_state.json.*.tmp", tuiStatePath(dir), b, 0o644)
}
