package app

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/logging/events"
	"github.com/atomicstack/overflow-menu/internal/menu"
	"github.com/atomicstack/overflow-menu/internal/popup"
	"github.com/atomicstack/overflow-menu/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	MenuFile   string
	Open       []string
	Dev        bool
}

// LoadMenus reads the configured menu file, or the built-in demo menus when
// none is set, and checks that every item names a registered action.
func LoadMenus(cfg Config, registry *menu.Registry) (menu.File, error) {
	file := menu.DefaultFile()
	source := "builtin"
	if cfg.MenuFile != "" {
		loaded, err := menu.Load(cfg.MenuFile)
		if err != nil {
			return menu.File{}, err
		}
		file = loaded
		source = cfg.MenuFile
	}
	if problems := file.Validate(); len(problems) > 0 {
		return menu.File{}, fmt.Errorf("%s: %s", source, strings.Join(problems, "; "))
	}
	if err := registry.Check(file.Menus); err != nil {
		return menu.File{}, fmt.Errorf("%s: %w", source, err)
	}
	known := make(map[string]bool, len(file.Menus))
	for _, def := range file.Menus {
		known[def.ID] = true
	}
	for _, id := range cfg.Open {
		if !known[id] {
			return menu.File{}, fmt.Errorf("%s: --open names unknown menu %q", source, id)
		}
	}
	events.App.MenusLoaded(source, len(file.Menus))
	return file, nil
}

// BuildModel wires the menus into a UI model ready to run.
func BuildModel(cfg Config) (*ui.Model, error) {
	registry := menu.NewRegistry()
	file, err := LoadMenus(cfg, registry)
	if err != nil {
		return nil, err
	}
	if cfg.Dev {
		popup.SetDevWarnings(events.Popup.Warn)
	} else {
		popup.SetDevWarnings(nil)
	}
	return ui.NewModel(ui.Config{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Menus:      file.Menus,
		Open:       cfg.Open,
		Registry:   registry,
	}), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model, err := BuildModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	events.App.Exit(err)
	return err
}
