package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Grab       key.Binding
	Drop       key.Binding
	Cancel     key.Binding
	New        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Toggle     key.Binding
	Filter     key.Binding
	Sort       key.Binding
	Search     key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		SwitchView: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "notes/todos")),
		Grab:       key.NewBinding(key.WithKeys(" ", "space", "m"), key.WithHelp("space", "grab to reorder")),
		Drop:       key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space/enter", "drop")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		New:        key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new")),
		Edit:       key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Toggle:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
		Filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "importance filter")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "completion sort")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Reload:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// dragKeys is the help shown while a keyboard drag is in progress.
type dragKeys struct{ keyMap }

func (k dragKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Drop, k.Cancel}
}

func (k dragKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type notesKeys struct{ keyMap }

func (k notesKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.New, k.Edit, k.Delete, k.Search, k.SwitchView, k.Help, k.Quit}
}

func (k notesKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grab},
		{k.New, k.Edit, k.Delete, k.Search},
		{k.SwitchView, k.Reload, k.Help, k.Quit},
	}
}

type todosKeys struct{ keyMap }

func (k todosKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Toggle, k.New, k.Edit, k.Delete, k.Filter, k.Sort, k.SwitchView, k.Help, k.Quit}
}

func (k todosKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Grab},
		{k.Toggle, k.New, k.Edit, k.Delete},
		{k.Filter, k.Sort},
		{k.SwitchView, k.Reload, k.Help, k.Quit},
	}
}
