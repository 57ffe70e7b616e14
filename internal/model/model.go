package model

import (
	"fmt"
	"strings"
	"time"
)

type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`

	// Order is the dense, zero-based position of the note in the notes list.
	Order int `json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n Note) ItemID() int64 { return n.ID }
func (n Note) ItemOrder() int { return n.Order }
func (n Note) WithID(id int64) Note {
	n.ID = id
	return n
}
func (n Note) WithOrder(order int) Note {
	n.Order = order
	return n
}

// Stamp sets UpdatedAt, and CreatedAt when it is still zero.
func (n Note) Stamp(now time.Time) Note {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	return n
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("note title is required")
	}
	return nil
}

type Importance string

const (
	ImportanceMajor    Importance = "MAJOR"
	ImportanceModerate Importance = "MODERATE"
	ImportanceMinor    Importance = "MINOR"
)

// Importances lists the importance levels from most to least important.
var Importances = []Importance{ImportanceMajor, ImportanceModerate, ImportanceMinor}

func ParseImportance(s string) (Importance, error) {
	switch Importance(strings.ToUpper(strings.TrimSpace(s))) {
	case ImportanceMajor:
		return ImportanceMajor, nil
	case ImportanceModerate:
		return ImportanceModerate, nil
	case ImportanceMinor, "":
		return ImportanceMinor, nil
	default:
		return "", fmt.Errorf("unknown importance: %s (want major|moderate|minor)", s)
	}
}

// Label returns the importance in display case ("Major").
func (i Importance) Label() string {
	s := string(i)
	if s == "" {
		return ""
	}
	return s[:1] + strings.ToLower(s[1:])
}

// Next cycles MINOR -> MODERATE -> MAJOR -> MINOR.
func (i Importance) Next() Importance {
	switch i {
	case ImportanceMinor:
		return ImportanceModerate
	case ImportanceModerate:
		return ImportanceMajor
	default:
		return ImportanceMinor
	}
}

type Todo struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
	IsComplete  bool       `json:"isComplete"`

	// Order is the dense, zero-based position of the todo in the todo list.
	Order int `json:"order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t Todo) ItemID() int64  { return t.ID }
func (t Todo) ItemOrder() int { return t.Order }
func (t Todo) WithID(id int64) Todo {
	t.ID = id
	return t
}
func (t Todo) WithOrder(order int) Todo {
	t.Order = order
	return t
}

func (t Todo) Stamp(now time.Time) Todo {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	return t
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("todo description is required")
	}
	if _, err := ParseImportance(string(t.Importance)); err != nil {
		return err
	}
	return nil
}

type Event struct {
	ID         int64     `json:"id"`
	TS         time.Time `json:"ts"`
	Type       string    `json:"type"`
	EntityKind string    `json:"entityKind"`
	EntityID   int64     `json:"entityId"`
	Payload    any       `json:"payload"`
}
