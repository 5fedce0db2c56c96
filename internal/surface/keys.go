package surface

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit    key.Binding
	Newline   key.Binding
	Suggest   key.Binding
	Cancel    key.Binding
	OpenModal key.Binding
	Close     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Newline:   key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "newline")),
	Suggest:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "suggestion")),
	Cancel:    key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "stop")),
	OpenModal: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open chat")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}
