package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/komik/pkg/app/screens"
)

type App struct {
	opts screens.Options
}

func NewApp(opts screens.Options) *App {
	return &App{opts: opts}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
