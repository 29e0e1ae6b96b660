package screens

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Home      key.Binding
	Ongoing   key.Binding
	Completed key.Binding
	Genres    key.Binding
	History   key.Binding
	Bookmarks key.Binding
	Search    key.Binding
	Filter    key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Continue  key.Binding
	Bookmark  key.Binding
	Export    key.Binding
	NextCh    key.Binding
	PrevCh    key.Binding
	Chapters  key.Binding
	Chrome    key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:      key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Home:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Ongoing:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "ongoing")),
		Completed: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Genres:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "genres")),
		History:   key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "history")),
		Bookmarks: key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "bookmarks")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		NextPage:  key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		Continue:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "read")),
		Bookmark:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export epub")),
		NextCh:    key.NewBinding(key.WithKeys("]", "N"), key.WithHelp("]", "next chapter")),
		PrevCh:    key.NewBinding(key.WithKeys("[", "P"), key.WithHelp("[", "prev chapter")),
		Chapters:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chapters")),
		Chrome:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle bars")),
		Refresh:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.NextPage, k.PrevPage, k.Search, k.Filter, k.Home, k.Ongoing, k.Completed, k.Genres, k.History, k.Bookmarks, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Continue, k.Bookmark, k.Export, k.Back, k.Quit}
}

func (k keyMap) readerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevCh, k.NextCh, k.Chapters, k.Chrome, k.Bookmark, k.Export, k.Back, k.Quit}
}

func (k keyMap) pickerHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Back}
}
