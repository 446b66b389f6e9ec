package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/overflow-menu/internal/menu"
	"github.com/atomicstack/overflow-menu/internal/popup"
	"github.com/atomicstack/overflow-menu/internal/theme"
	"github.com/atomicstack/overflow-menu/internal/ui/command"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config carries everything NewModel needs.
type Config struct {
	Width      int
	Height     int
	ShowFooter bool
	Menus      []menu.Definition
	// Open lists menu ids whose external open flag starts out set.
	Open     []string
	Registry *menu.Registry
}

// Model implements the Bubble Tea model hosting the overflow menus.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	doc   *popup.Document
	focus *popup.Focus
	tree  *popup.Elements
	hits  *HitMap
	rects map[string]Rect

	menus        []*overflow
	byID         map[string]*overflow
	triggerOrder []*overflow
	typeAhead    string

	keys keyMap
	help help.Model

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	registry *menu.Registry
	bus      *command.Bus
	initCmd  tea.Cmd
	quitting bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the host and runs the first layout pass so every trigger
// is mounted before the program starts.
func NewModel(cfg Config) *Model {
	registry := cfg.Registry
	if registry == nil {
		registry = menu.NewRegistry()
	}
	doc := popup.NewDocument()
	m := &Model{
		showFooter: cfg.ShowFooter,
		doc:        doc,
		focus:      popup.NewFocus(doc),
		tree:       popup.NewElements(),
		hits:       NewHitMap(),
		rects:      make(map[string]Rect),
		byID:       make(map[string]*overflow),
		keys:       defaultKeyMap(),
		help:       help.New(),
		registry:   registry,
		bus:        command.New(),
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	open := make(map[string]bool, len(cfg.Open))
	for _, id := range cfg.Open {
		open[id] = true
	}
	for _, def := range cfg.Menus {
		o := m.newOverflow(def, def.Open || open[def.ID])
		m.menus = append(m.menus, o)
		m.byID[def.ID] = o
	}
	m.registerHandlers()
	m.initCmd = m.finishUpdate(nil)
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmd := m.initCmd
	m.initCmd = nil
	return cmd
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):         m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(popup.FocusReturnMsg{}): m.handleFocusReturnMsg,
		reflect.TypeOf(menu.ActionResult{}):    m.handleActionResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate feeds each menu's external open flag to its machine and then
// re-runs layout so placement reflects the new state.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.quitting {
		return tea.Batch(cmds...)
	}
	for _, o := range m.menus {
		if cmd := o.machine.SyncOpen(o.external); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if cmd := m.layout(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// quit tears down every menu before asking the program to exit. Layout stops
// so triggers are not mounted again.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	for _, o := range m.menus {
		o.machine.Unmount()
	}
	return tea.Quit
}

func (m *Model) screenSize() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) menuByID(id string) *overflow {
	return m.byID[id]
}

func (m *Model) anyOpen() bool {
	for _, o := range m.menus {
		if o.machine.IsOpen() {
			return true
		}
	}
	return false
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
