// Package desktop is the Bubble Tea presentation layer: it owns the window
// registry of one desktop session, feeds it pointer and resize events and
// composes every window into a single frame.
package desktop

import (
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/deskos/internal/animation"
	"github.com/Gaurav-Gosain/deskos/internal/apps"
	"github.com/Gaurav-Gosain/deskos/internal/config"
	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/input"
	"github.com/Gaurav-Gosain/deskos/internal/registry"
	"github.com/Gaurav-Gosain/deskos/internal/theme"
	"github.com/google/uuid"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "desktop",
})

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// contentTickInterval is how often hosted content refreshes.
const contentTickInterval = time.Second

type (
	frameMsg     time.Time
	scheduledMsg func()
	configMsg    *config.Config
)

// Options configure a desktop session.
type Options struct {
	Config *config.Config
	// Width and Height are the initial viewport size, used until the first
	// tea.WindowSizeMsg.
	Width  int
	Height int
	// Open lists the apps opened at start, by name.
	Open []string
	// ConfigUpdates delivers reloaded configurations.
	ConfigUpdates <-chan *config.Config
	// Now overrides the clock.
	Now func() time.Time
}

// Model is one desktop session.
type Model struct {
	id     string
	cfg    *config.Config
	styles styles
	now    func() time.Time

	screen      *geometry.Screen
	sched       *animation.LoopScheduler
	reg         *registry.Registry
	router      *input.Router
	unsubscribe func()
	updates     <-chan *config.Config

	instances    []registry.Instance
	taskbar      []taskEntry
	unwatch      map[int]func()
	dirty        map[int]bool
	shown        map[int]geometry.Rect
	tweens       map[int]animation.Tween
	contentCache map[int][]string
	lastContent  time.Time

	quitting bool
}

// New builds a desktop and opens the start apps.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	m := &Model{
		id:           uuid.NewString(),
		cfg:          cfg,
		styles:       newStyles(cfg.Appearance),
		now:          now,
		screen:       geometry.NewScreen(width, height, cfg.Appearance.TaskbarHeight, cfg.Behavior.VisibleMargin),
		sched:        animation.NewLoopScheduler(),
		updates:      opts.ConfigUpdates,
		unwatch:      make(map[int]func()),
		dirty:        make(map[int]bool),
		shown:        make(map[int]geometry.Rect),
		tweens:       make(map[int]animation.Tween),
		contentCache: make(map[int][]string),
	}
	m.reg = registry.New(m.screen, m.sched, cfg.RegistryOptions())
	m.router = input.NewRouter(m.reg)
	m.router.SetTaskbar(func(p geometry.Point) (int, bool) {
		return taskbarHit(m.taskbar, m.screen.Usable().Height, p)
	})
	m.unsubscribe = m.reg.Subscribe(m.onInstances)

	for _, name := range opts.Open {
		if _, err := m.OpenApp(name); err != nil {
			logger.Warn("start app", "session", m.id, "app", name, "err", err)
		}
	}
	logger.Debug("desktop created", "session", m.id, "width", width, "height", height)
	return m
}

// ID returns the session id used in logs.
func (m *Model) ID() string { return m.id }

// Registry exposes the window registry.
func (m *Model) Registry() *registry.Registry { return m.reg }

// Dragging reports whether a pointer drag is in progress.
func (m *Model) Dragging() bool { return m.router.Dragging() }

// OpenApp opens a catalogue app by name.
func (m *Model) OpenApp(name string) (registry.Instance, error) {
	app, ok := apps.Find(name)
	if !ok {
		return registry.Instance{}, &UnknownAppError{Name: name}
	}
	return m.open(app)
}

func (m *Model) open(app apps.App) (registry.Instance, error) {
	d := app.Descriptor()
	d.MinimizedTop = m.screen.Usable().Height
	inst, err := m.reg.Open(d)
	if err != nil {
		logger.Error("open app", "session", m.id, "app", app.Name, "err", err)
		return registry.Instance{}, err
	}
	logger.Info("app opened", "session", m.id, "app", app.Name, "window", inst.ID)
	return inst, nil
}

// UnknownAppError is returned by OpenApp for names not in the catalogue.
type UnknownAppError struct {
	Name string
}

func (e *UnknownAppError) Error() string {
	return "unknown app " + e.Name
}

func (m *Model) onInstances(list []registry.Instance) {
	m.instances = list
	m.taskbar = layoutTaskbar(list, m.screen.Width)

	live := make(map[int]bool, len(list))
	for _, inst := range list {
		live[inst.ID] = true
		if _, ok := m.unwatch[inst.ID]; !ok {
			m.watch(inst)
		}
	}
	for id, unwatch := range m.unwatch {
		if !live[id] {
			unwatch()
			delete(m.unwatch, id)
			delete(m.dirty, id)
			delete(m.shown, id)
			delete(m.tweens, id)
			delete(m.contentCache, id)
		}
	}
	m.advance(m.now())
}

// watch marks a window dirty whenever its geometry or animation changes.
func (m *Model) watch(inst registry.Instance) {
	id := inst.ID
	m.dirty[id] = true
	m.unwatch[id] = inst.Window.Watch(func() {
		m.dirty[id] = true
	})
}

// Init starts the frame ticker and the loop-side listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.frame(), m.listenScheduler()}
	if m.updates != nil {
		cmds = append(cmds, m.listenConfig())
	}
	return tea.Batch(cmds...)
}

func (m *Model) frame() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// listenScheduler waits for the next timer callback so it runs on the loop.
func (m *Model) listenScheduler() tea.Cmd {
	sched := m.sched
	return func() tea.Msg {
		select {
		case f := <-sched.C:
			return scheduledMsg(f)
		case <-sched.Done():
			return nil
		}
	}
}

func (m *Model) listenConfig() tea.Cmd {
	updates := m.updates
	done := m.sched.Done()
	return func() tea.Msg {
		select {
		case cfg, ok := <-updates:
			if !ok {
				return nil
			}
			return configMsg(cfg)
		case <-done:
			return nil
		}
	}
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.router.Handle(msg) {
		m.advance(m.now())
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.reg.Resize(msg.Width, msg.Height)
		m.taskbar = layoutTaskbar(m.instances, m.screen.Width)
		m.advance(m.now())
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		if now.Sub(m.lastContent) >= contentTickInterval {
			m.lastContent = now
			m.tickContent()
		}
		m.advance(m.now())
		return m, m.frame()

	case scheduledMsg:
		msg()
		m.advance(m.now())
		return m, m.listenScheduler()

	case configMsg:
		m.ApplyConfig(msg)
		return m, m.listenConfig()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.Close()
		return m, tea.Quit
	default:
		if app, ok := apps.ByKey(key); ok {
			m.open(app)
		}
	}
	return m, nil
}

func (m *Model) tickContent() {
	for _, inst := range m.instances {
		if t, ok := inst.Content.(content.Ticker); ok {
			t.Tick()
		}
	}
}

// ApplyConfig switches to cfg without restarting the session.
func (m *Model) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Appearance.Theme != m.cfg.Appearance.Theme {
		if err := theme.Initialize(cfg.Appearance.Theme); err != nil {
			logger.Warn("theme", "session", m.id, "err", err)
		}
	}
	m.cfg = cfg
	m.styles = newStyles(cfg.Appearance)
	m.screen.Chrome = cfg.Appearance.TaskbarHeight
	m.screen.Margin = cfg.Behavior.VisibleMargin
	m.reg.SetOptions(cfg.RegistryOptions())
	m.reg.Resize(m.screen.Width, m.screen.Height)
	m.advance(m.now())
	logger.Info("config applied", "session", m.id)
}

// advance updates the on-screen rectangles of windows that changed since
// the last call or are mid-tween. A window whose gate is armed moves along a
// tween toward its target; every other window snaps.
func (m *Model) advance(now time.Time) {
	for _, inst := range m.instances {
		id := inst.ID
		tw, tweening := m.tweens[id]
		if !m.dirty[id] && !tweening {
			continue
		}
		delete(m.dirty, id)

		target := inst.Window.Rect()
		d, armed := inst.Window.Animation()
		prev, seen := m.shown[id]
		if !armed || !seen {
			delete(m.tweens, id)
			m.shown[id] = target
			continue
		}
		if !tweening || tw.To != target {
			tw = animation.Tween{From: prev, To: target, Start: now, Duration: d}
			m.tweens[id] = tw
		}
		m.shown[id] = tw.At(now)
	}
}

func (m *Model) animating(id int) bool {
	_, ok := m.tweens[id]
	return ok
}

// Stop stops timer delivery. Unlike Close it may be called from any
// goroutine, for example when the hosting connection drops.
func (m *Model) Stop() {
	m.sched.Close()
}

// Close releases timers and subscriptions. Safe to call more than once.
func (m *Model) Close() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.unsubscribe()
	for id, unwatch := range m.unwatch {
		unwatch()
		delete(m.unwatch, id)
	}
	for _, inst := range m.instances {
		inst.Window.Close()
	}
	m.sched.Close()
	logger.Debug("desktop closed", "session", m.id)
}
