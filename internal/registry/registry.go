// Package registry owns the ordered collection of open windows: identity,
// z-order, focus and visibility. Every mutation republishes the full
// instance list to subscribers.
package registry

import (
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/deskos/internal/animation"
	"github.com/Gaurav-Gosain/deskos/internal/content"
	"github.com/Gaurav-Gosain/deskos/internal/geometry"
	"github.com/Gaurav-Gosain/deskos/internal/window"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "registry",
})

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Descriptor describes a window to open.
type Descriptor struct {
	Title           string
	MinWidth        int
	MinHeight       int
	MaxWidth        int // 0 means unbounded
	MaxHeight       int // 0 means unbounded
	KeepAspectRatio bool
	FixedSize       bool // disables maximize and resize
	StartMinimized  bool
	// Bounds is the initial geometry. A zero size opens the window at its
	// minimum size at a cascaded position.
	Bounds       geometry.Rect
	MinimizedTop int
	Content      content.Component
}

func (d Descriptor) constraints() geometry.Constraints {
	return geometry.Constraints{
		MinWidth:        d.MinWidth,
		MinHeight:       d.MinHeight,
		MaxWidth:        d.MaxWidth,
		MaxHeight:       d.MaxHeight,
		KeepAspectRatio: d.KeepAspectRatio,
	}
}

// Instance is one open window. Published instances are value copies; the
// Window handle is shared and owns the geometry.
type Instance struct {
	ID           int
	ZIndex       int
	Active       bool
	Visible      bool
	Title        string
	Constraints  geometry.Constraints
	MinimizedTop int
	Window       *window.Window
	Content      content.Component
}

// Listener receives the full ordered instance list.
type Listener func(instances []Instance)

// Options configure windows created by the registry.
type Options struct {
	Window      window.Options
	CascadeStep int
}

type subscriber struct {
	id int
	fn Listener
}

// Registry is not safe for concurrent use; call it from the event loop.
type Registry struct {
	screen    *geometry.Screen
	sched     animation.Scheduler
	opts      Options
	instances []*Instance
	nextID    int
	subs      []*subscriber
	nextSub   int
}

// New returns an empty registry for the given desktop.
func New(screen *geometry.Screen, sched animation.Scheduler, opts Options) *Registry {
	if opts.CascadeStep <= 0 {
		opts.CascadeStep = 2
	}
	return &Registry{
		screen: screen,
		sched:  sched,
		opts:   opts,
		nextID: 1,
	}
}

// Screen returns the shared desktop bounds.
func (r *Registry) Screen() *geometry.Screen { return r.screen }

// SetOptions updates transition options for new and existing windows.
func (r *Registry) SetOptions(opts Options) {
	if opts.CascadeStep <= 0 {
		opts.CascadeStep = r.opts.CascadeStep
	}
	r.opts = opts
	for _, inst := range r.instances {
		wo := opts.Window
		wo.Resizable = inst.Window.Resizable()
		wo.MinimizedTop = inst.MinimizedTop
		inst.Window.SetOptions(wo)
	}
}

// Open creates a window from d, focuses it and stacks it on top. Invalid
// constraints are rejected.
func (r *Registry) Open(d Descriptor) (Instance, error) {
	bounds := d.Bounds
	if bounds.Width == 0 && bounds.Height == 0 {
		offset := r.opts.CascadeStep * (1 + len(r.instances)%8)
		bounds = geometry.Rect{X: offset, Y: offset, Width: d.MinWidth, Height: d.MinHeight}
	}

	store, err := geometry.NewStore(d.constraints(), r.screen, bounds)
	if err != nil {
		return Instance{}, fmt.Errorf("open %q: %w", d.Title, err)
	}

	wo := r.opts.Window
	wo.Resizable = !d.FixedSize
	wo.MinimizedTop = d.MinimizedTop
	win := window.New(store, r.sched, wo)

	inst := &Instance{
		ID:           r.nextID,
		ZIndex:       r.maxZ() + 1,
		Visible:      !d.StartMinimized,
		Title:        d.Title,
		Constraints:  d.constraints(),
		MinimizedTop: d.MinimizedTop,
		Window:       win,
		Content:      d.Content,
	}
	r.nextID++

	if inst.Visible {
		r.deactivateAll()
		inst.Active = true
	} else {
		win.SetVisible(false)
	}
	r.instances = append(r.instances, inst)

	logger.Debug("window opened", "id", inst.ID, "title", inst.Title, "z", inst.ZIndex)
	r.publish()
	return *inst, nil
}

// Close removes a window. Unknown ids are ignored.
func (r *Registry) Close(id int) {
	i := r.index(id)
	if i < 0 {
		return
	}
	inst := r.instances[i]
	inst.Window.Close()
	r.instances = append(r.instances[:i], r.instances[i+1:]...)

	logger.Debug("window closed", "id", id, "wasActive", inst.Active)
	r.publish()
}

// Select focuses a window and raises it above all others.
func (r *Registry) Select(id int) {
	inst := r.find(id)
	if inst == nil {
		return
	}
	if inst.Active && r.isTop(inst) {
		return
	}
	r.deactivateAll()
	inst.Active = true
	if !r.isTop(inst) {
		inst.ZIndex = r.maxZ() + 1
	}
	r.publish()
}

// Hide minimizes a window and drops its focus.
func (r *Registry) Hide(id int) {
	inst := r.find(id)
	if inst == nil || !inst.Visible {
		return
	}
	inst.Visible = false
	inst.Active = false
	inst.Window.SetVisible(false)
	r.publish()
}

// Show restores a minimized window and focuses it.
func (r *Registry) Show(id int) {
	inst := r.find(id)
	if inst == nil || inst.Visible {
		return
	}
	inst.Visible = true
	inst.Window.SetVisible(true)
	r.deactivateAll()
	inst.Active = true
	if !r.isTop(inst) {
		inst.ZIndex = r.maxZ() + 1
	}
	r.publish()
}

// ToggleMaximize maximizes or restores a window.
func (r *Registry) ToggleMaximize(id int) {
	if inst := r.find(id); inst != nil && inst.Visible {
		inst.Window.ToggleMaximize()
	}
}

// Resize updates the desktop size and re-fits maximized windows.
func (r *Registry) Resize(width, height int) {
	r.screen.Resize(width, height)
	for _, inst := range r.instances {
		inst.Window.Refit()
	}
}

// Get returns a copy of the instance with the given id.
func (r *Registry) Get(id int) (Instance, bool) {
	inst := r.find(id)
	if inst == nil {
		return Instance{}, false
	}
	return *inst, true
}

// Instances returns a snapshot of all instances in creation order.
func (r *Registry) Instances() []Instance {
	out := make([]Instance, len(r.instances))
	for i, inst := range r.instances {
		out[i] = *inst
	}
	return out
}

// Props builds the render props for an instance.
func (r *Registry) Props(inst Instance) content.Props {
	return content.Props{
		Active:     inst.Active,
		ID:         inst.ID,
		Visible:    inst.Visible,
		ZIndex:     inst.ZIndex,
		OnClose:    r.Close,
		OnMinimise: r.Hide,
		OnSelect:   r.Select,
	}
}

// Subscribe registers fn and immediately delivers the current list.
func (r *Registry) Subscribe(fn Listener) (unsubscribe func()) {
	r.nextSub++
	sub := &subscriber{id: r.nextSub, fn: fn}
	r.subs = append(r.subs, sub)
	fn(r.Instances())

	return func() {
		for i, existing := range r.subs {
			if existing.id == sub.id {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry) publish() {
	subs := make([]*subscriber, len(r.subs))
	copy(subs, r.subs)
	for _, sub := range subs {
		// Each listener gets its own slice.
		sub.fn(r.Instances())
	}
}

func (r *Registry) find(id int) *Instance {
	if i := r.index(id); i >= 0 {
		return r.instances[i]
	}
	return nil
}

func (r *Registry) index(id int) int {
	for i, inst := range r.instances {
		if inst.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) maxZ() int {
	z := 0
	for _, inst := range r.instances {
		z = max(z, inst.ZIndex)
	}
	return z
}

func (r *Registry) isTop(inst *Instance) bool {
	return inst.ZIndex == r.maxZ()
}

func (r *Registry) deactivateAll() {
	for _, inst := range r.instances {
		inst.Active = false
	}
}
