package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/user/clip-trimmer/tui/components"
)

// keyMap defines the editing keybindings.
type keyMap struct {
	PlayPause     key.Binding
	SeekBack      key.Binding
	SeekForward   key.Binding
	StepDown      key.Binding
	StepUp        key.Binding
	SelectStart   key.Binding
	SelectEnd     key.Binding
	SwitchHandle  key.Binding
	HandleBack    key.Binding
	HandleForward key.Binding
	MarkIn        key.Binding
	MarkOut       key.Binding
	Reset         key.Binding
	Save          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Play/pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("← / h", "Seek back"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→ / l", "Seek fwd"),
		),
		StepDown: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("< / ,", "Step -"),
		),
		StepUp: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp("> / .", "Step +"),
		),
		SelectStart: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Start handle"),
		),
		SelectEnd: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "End handle"),
		),
		SwitchHandle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Switch handle"),
		),
		HandleBack: key.NewBinding(
			key.WithKeys("shift+left", "H"),
			key.WithHelp("⇧← / H", "Handle back"),
		),
		HandleForward: key.NewBinding(
			key.WithKeys("shift+right", "L"),
			key.WithHelp("⇧→ / L", "Handle fwd"),
		),
		MarkIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Start here"),
		),
		MarkOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "End here"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Full range"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s / enter", "Save clip"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.SwitchHandle, k.HandleBack, k.HandleForward, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.SeekBack, k.SeekForward, k.StepDown, k.StepUp},
		{k.SelectStart, k.SelectEnd, k.SwitchHandle, k.HandleBack, k.HandleForward, k.MarkIn, k.MarkOut, k.Reset},
		{k.Save, k.Help, k.Quit},
	}
}

// helpGroups lays the bindings out for the help overlay.
func (k keyMap) helpGroups() []components.HelpGroup {
	full := k.FullHelp()
	return []components.HelpGroup{
		{Title: "Playback", Bindings: full[0]},
		{Title: "Clip range", Bindings: full[1]},
		{Title: "Application", Bindings: append(full[2], cancelBinding)},
	}
}

// controlGroups lays the bindings out for the controls column.
func (k keyMap) controlGroups() []components.ControlGroup {
	return []components.ControlGroup{
		components.NewControlGroup("Playback",
			[]key.Binding{k.PlayPause, k.SeekBack, k.SeekForward},
			[]key.Binding{k.StepDown, k.StepUp},
		),
		components.NewControlGroup("Clip",
			[]key.Binding{k.SelectStart, k.SelectEnd, k.SwitchHandle},
			[]key.Binding{k.HandleBack, k.HandleForward},
			[]key.Binding{k.MarkIn, k.MarkOut, k.Reset},
		),
		components.NewControlGroup("Export",
			[]key.Binding{k.Save, k.Help, k.Quit},
		),
	}
}

// cancelBinding is active while a render runs.
var cancelBinding = key.NewBinding(
	key.WithKeys("esc"),
	key.WithHelp("esc", "Cancel render"),
)
