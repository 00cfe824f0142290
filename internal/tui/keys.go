package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Seed     key.Binding
	Remind   key.Binding
	Toggle   key.Binding
	Open     key.Binding
	Quit     key.Binding
	Back     key.Binding
	Submit   key.Binding
	Next     key.Binding
	Forgot   key.Binding
	Dismiss  key.Binding
	ForceEnd key.Binding
}

var keys = keyMap{
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Seed:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sample")),
	Remind:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remind")),
	Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Next:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	Forgot:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "forgot password")),
	Dismiss:  key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	ForceEnd: key.NewBinding(key.WithKeys("ctrl+c")),
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Seed, k.Remind, k.Toggle, k.Open}
}
