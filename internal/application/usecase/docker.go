package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/logging"
)

var (
	// ErrMissingTarget is the configuration error for a Docker without a
	// renderer.
	ErrMissingTarget = errors.New("docker: target renderer is required")

	// ErrMissingLoop is the configuration error for a Docker without a
	// dispatcher.
	ErrMissingLoop = errors.New("docker: dispatcher is required")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("docker closed")
)

const alignTabsKey = "align-tabs"

// Config configures a Docker.
type Config struct {
	// Target draws the tree. Required.
	Target port.Renderer
	// Loop owns the tree. Required; the Docker closes it on Close.
	Loop port.Dispatcher
	// Realign debounces tab-overflow realignment when Target is a
	// port.TabAligner. Its callbacks must already run on Loop. Without it
	// tabs are realigned after every redraw.
	Realign port.Debouncer
	// Menu pops up the stack overflow list. Optional.
	Menu port.OverflowMenu

	// Panels is the initial tree; only the first element is the root.
	Panels []entity.NodeSpec
	// Theme names the style front ends draw the tree with.
	Theme   string
	Control Control
	Modules map[string]port.ModuleFuncs

	OnStateChanged func(ctx context.Context, tree *entity.Tree)
	OnClick        func(ctx context.Context, panel *entity.Panel)
	OnLoad         func(ctx context.Context)
	OnDataChanged  func(ctx context.Context, tree *entity.Tree)
}

// Docker owns one panel tree and serializes every operation on it through
// the dispatcher. Callbacks and module hooks run on the dispatcher with a
// context that lets them call back into the Docker without deadlocking.
type Docker struct {
	cfg       Config
	loop      port.Dispatcher
	logger    zerolog.Logger
	lifecycle *Lifecycle
	tree      *entity.Tree

	loaded  bool
	drawing bool
	dirty   bool
	closed  bool
}

// NewDocker validates cfg, builds the initial tree and draws it once.
func NewDocker(ctx context.Context, cfg Config) (*Docker, error) {
	ctx = logging.WithComponent(ctx, "docker")
	logger := *logging.FromContext(ctx)

	if cfg.Target == nil {
		logger.Error().Err(ErrMissingTarget).Msg("configuration error")
		return nil, ErrMissingTarget
	}
	if cfg.Loop == nil {
		logger.Error().Err(ErrMissingLoop).Msg("configuration error")
		return nil, ErrMissingLoop
	}

	tree, err := entity.BuildTree(cfg.Panels)
	if err != nil {
		return nil, fmt.Errorf("initial panels: %w", err)
	}

	d := &Docker{
		cfg:    cfg,
		loop:   cfg.Loop,
		logger: logger,
		tree:   entity.NewTree(nil),
	}
	d.lifecycle = NewLifecycle(LifecycleDeps{
		Post:    d.post,
		Surface: cfg.Target.Surface,
		Changed: d.redraw,
		Removed: d.removePanel,
	}, cfg.Control)
	d.lifecycle.AddModule(cfg.Modules)

	err = d.run(ctx, func(ctx context.Context) error {
		d.tree = tree
		d.arrangeAndRedraw(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Theme returns the configured theme name.
func (d *Docker) Theme() string { return d.cfg.Theme }

// SetPanels replaces the whole tree. Panels of the old tree are dropped
// without running their destroy hooks.
func (d *Docker) SetPanels(ctx context.Context, specs []entity.NodeSpec) error {
	tree, err := entity.BuildTree(specs)
	if err != nil {
		return err
	}
	return d.run(ctx, func(ctx context.Context) error {
		d.lifecycle.Forget()
		d.tree = tree
		d.arrangeAndRedraw(ctx)
		return nil
	})
}

// AddPanel docks panel at path. path accepts the canonical and dotted forms;
// an unparsable or dangling path is a logged no-op reported as false. A
// panel added with Active set becomes the visible panel of its stack.
func (d *Docker) AddPanel(ctx context.Context, path string, dir entity.Direction, panel *entity.Panel, index int) (bool, error) {
	var added bool
	err := d.run(ctx, func(ctx context.Context) error {
		log := logging.FromContext(ctx)
		at, ok := entity.ParsePath(path)
		if !ok {
			log.Debug().Str("path", path).Msg("add panel: malformed path")
			return nil
		}
		wantActive := panel != nil && panel.Active
		if panel != nil {
			panel.Active = false
		}

		ok, err := DockPanel(ctx, d.tree, at, dir, panel, index)
		if err != nil {
			return err
		}
		if !ok {
			log.Debug().Str("path", path).Msg("add panel: target not found")
			return nil
		}
		added = true
		d.redraw(ctx)
		if wantActive {
			d.activate(ctx, panel)
		}
		return nil
	})
	return added, err
}

// ClosePanel runs the destroy transition of the panel at path. Once it
// applies the panel is removed and the tree arranged. Paths that do not
// address a panel are a logged no-op.
func (d *Docker) ClosePanel(ctx context.Context, path string) error {
	return d.run(ctx, func(ctx context.Context) error {
		p, ok := d.panelAt(ctx, path)
		if !ok {
			return nil
		}
		d.lifecycle.Destroy(ctx, p)
		return nil
	})
}

// ActivePanel makes the panel at path visible. A stack path re-activates
// its current panel.
func (d *Docker) ActivePanel(ctx context.Context, path string) error {
	return d.run(ctx, func(ctx context.Context) error {
		node, ok := d.resolve(ctx, path)
		if !ok {
			return nil
		}
		switch v := node.(type) {
		case *entity.Panel:
			d.activate(ctx, v)
		case *entity.Stack:
			d.lifecycle.Activate(ctx, v, max(v.ActiveIndex(), 0))
		default:
			logging.FromContext(ctx).Debug().Str("path", path).Msg("activate: not a panel or stack")
		}
		return nil
	})
}

// ChangeActiveStackPanel activates the index-th panel of the stack at
// stackPath.
func (d *Docker) ChangeActiveStackPanel(ctx context.Context, stackPath string, index int) error {
	return d.run(ctx, func(ctx context.Context) error {
		node, ok := d.resolve(ctx, stackPath)
		if !ok {
			return nil
		}
		stack, isStack := node.(*entity.Stack)
		if !isStack {
			logging.FromContext(ctx).Debug().Str("path", stackPath).Msg("change active: not a stack")
			return nil
		}
		d.lifecycle.Activate(ctx, stack, index)
		return nil
	})
}

// AddModule merges module handlers into the registry.
func (d *Docker) AddModule(ctx context.Context, modules map[string]port.ModuleFuncs) error {
	return d.run(ctx, func(ctx context.Context) error {
		d.lifecycle.AddModule(modules)
		return nil
	})
}

// Repaint arranges and redraws without changing the logical tree.
func (d *Docker) Repaint(ctx context.Context) error {
	return d.run(ctx, func(ctx context.Context) error {
		d.arrangeAndRedraw(ctx)
		return nil
	})
}

// ClickTab handles a click on the tab of the panel at path: OnClick fires
// and an inactive tab becomes the visible one.
func (d *Docker) ClickTab(ctx context.Context, path string) error {
	return d.run(ctx, func(ctx context.Context) error {
		p, ok := d.panelAt(ctx, path)
		if !ok {
			return nil
		}
		if d.cfg.OnClick != nil {
			d.cfg.OnClick(ctx, p)
		}
		if !p.Active || !p.Shown() {
			d.activate(ctx, p)
		}
		return nil
	})
}

// OpenStackMore pops up the overflow menu of the stack at stackPath.
// Choosing an entry activates that panel. Without a menu the action is
// unavailable and only logged.
func (d *Docker) OpenStackMore(ctx context.Context, stackPath string) error {
	return d.run(ctx, func(ctx context.Context) error {
		log := logging.FromContext(ctx)
		if d.cfg.Menu == nil {
			log.Warn().Str("path", stackPath).Msg("overflow menu not configured")
			return nil
		}
		node, ok := d.resolve(ctx, stackPath)
		if !ok {
			return nil
		}
		stack, isStack := node.(*entity.Stack)
		if !isStack {
			return nil
		}

		items := make([]port.MenuItem, 0, len(stack.Panels))
		for i, p := range stack.Panels {
			items = append(items, port.MenuItem{Label: p.Name, Index: i, StackPath: stack.Path})
		}
		d.cfg.Menu.Popup(ctx, items, func(item port.MenuItem) {
			d.post(func(ctx context.Context) {
				node, ok := d.tree.Resolve(item.StackPath)
				if !ok {
					return
				}
				if s, isStack := node.(*entity.Stack); isStack {
					d.lifecycle.Activate(ctx, s, item.Index)
				}
			})
		})
		return nil
	})
}

// Snapshot returns the declarative form of the current tree.
func (d *Docker) Snapshot(ctx context.Context) ([]entity.NodeSpec, error) {
	var specs []entity.NodeSpec
	err := d.run(ctx, func(context.Context) error {
		specs = entity.SnapshotTree(d.tree)
		return nil
	})
	return specs, err
}

// View runs fn with the live tree on the dispatcher. fn must not keep the
// tree or mutate it.
func (d *Docker) View(ctx context.Context, fn func(tree *entity.Tree)) error {
	return d.run(ctx, func(context.Context) error {
		fn(d.tree)
		return nil
	})
}

// TransitionState reports the lifecycle state of a panel.
func (d *Docker) TransitionState(ctx context.Context, panelID string) (TransitionState, error) {
	state := StateIdle
	err := d.run(ctx, func(context.Context) error {
		state = d.lifecycle.State(panelID)
		return nil
	})
	return state, err
}

// Flush waits until everything posted before it has run.
func (d *Docker) Flush(ctx context.Context) error {
	return d.run(ctx, func(context.Context) error { return nil })
}

// Close stops realignment and the dispatcher. It is safe to call twice.
// Called from a hook it returns before the dispatcher has stopped.
func (d *Docker) Close(ctx context.Context) error {
	err := d.run(ctx, func(context.Context) error {
		d.closed = true
		if d.cfg.Realign != nil {
			d.cfg.Realign.Destroy()
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		d.logger.Debug().Err(err).Msg("close: dispatcher already stopped")
	}
	if d.loop.OnLoop(ctx) {
		go d.loop.Close()
		return nil
	}
	d.loop.Close()
	return nil
}

// BeginDrag starts dragging the panel at path. It returns nil when path does
// not address a panel.
func (d *Docker) BeginDrag(ctx context.Context, path string) (*Drag, error) {
	var drag *Drag
	err := d.run(ctx, func(ctx context.Context) error {
		p, ok := d.panelAt(ctx, path)
		if !ok {
			return nil
		}
		drag = &Drag{docker: d, session: NewDragSession(p)}
		return nil
	})
	return drag, err
}

// BeginResize starts a splitter drag on the handle descriptor produced by
// the renderer.
func (d *Docker) BeginResize(ctx context.Context, handle string, origin entity.Point, extents Extents) (*Resize, error) {
	h, err := ParseResizeHandle(handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoGesture, err)
	}
	var r *Resize
	err = d.run(ctx, func(context.Context) error {
		g, err := StartResize(d.tree, h, origin, extents)
		if err != nil {
			return err
		}
		r = &Resize{docker: d, gesture: g}
		return nil
	})
	return r, err
}

// Drag is a panel drag in progress. Over may be called from the pointer
// goroutine; Drop and Cancel go through the dispatcher.
type Drag struct {
	docker  *Docker
	session *DragSession
}

// Panel returns the dragged panel.
func (g *Drag) Panel() *entity.Panel { return g.session.Panel }

// Over classifies the pointer against target.
func (g *Drag) Over(target DropTarget, pt entity.Point) (entity.Direction, bool) {
	return g.session.Over(target, pt)
}

// Drop moves the panel to the last classified target. It reports false when
// there was no target or the drop would not change the tree.
func (g *Drag) Drop(ctx context.Context) (bool, error) {
	target, dir, ok := g.session.Target()
	g.session.Cancel()
	if !ok {
		return false, nil
	}

	var moved bool
	err := g.docker.run(ctx, func(ctx context.Context) error {
		p, err := MovePanel(g.docker.tree, g.session.Panel, target, dir)
		if err != nil || p == nil {
			return err
		}
		moved = true
		logging.FromContext(ctx).Debug().
			Str("panel_id", p.ID).
			Str("path", p.Path.String()).
			Str("direction", string(dir)).
			Msg("panel moved")
		g.docker.redraw(ctx)
		g.docker.activate(ctx, p)
		return nil
	})
	return moved, err
}

// Cancel abandons the drag.
func (g *Drag) Cancel() { g.session.Cancel() }

// Resize is a splitter drag in progress.
type Resize struct {
	docker  *Docker
	gesture *ResizeGesture
}

// Handle returns the splitter being dragged.
func (r *Resize) Handle() ResizeHandle { return r.gesture.Handle }

// Move returns the visual weights for the pointer at pt. The tree is not
// touched until End.
func (r *Resize) Move(pt entity.Point) (prev, next float64) {
	return r.gesture.Move(pt)
}

// End commits the last weights, fires OnDataChanged and redraws.
func (r *Resize) End(ctx context.Context) error {
	return r.docker.run(ctx, func(ctx context.Context) error {
		if err := r.gesture.Commit(r.docker.tree); err != nil {
			return err
		}
		if r.docker.cfg.OnDataChanged != nil {
			r.docker.cfg.OnDataChanged(ctx, r.docker.tree)
		}
		r.docker.redraw(ctx)
		return nil
	})
}

// Cancel restores the weights recorded at gesture start.
func (r *Resize) Cancel(ctx context.Context) error {
	return r.docker.run(ctx, func(ctx context.Context) error {
		if err := r.gesture.Rollback(r.docker.tree); err != nil {
			return err
		}
		r.docker.redraw(ctx)
		return nil
	})
}

func (d *Docker) run(ctx context.Context, fn func(ctx context.Context) error) error {
	return d.loop.Invoke(ctx, func(loopCtx context.Context) error {
		if d.closed {
			return ErrClosed
		}
		return fn(d.withLogger(loopCtx))
	})
}

func (d *Docker) post(fn func(ctx context.Context)) bool {
	return d.loop.Post(func(loopCtx context.Context) {
		if d.closed {
			return
		}
		fn(d.withLogger(loopCtx))
	})
}

func (d *Docker) withLogger(ctx context.Context) context.Context {
	return logging.WithContext(ctx, d.logger)
}

func (d *Docker) resolve(ctx context.Context, path string) (entity.Node, bool) {
	at, ok := entity.ParsePath(path)
	if !ok {
		logging.FromContext(ctx).Debug().Str("path", path).Msg("malformed path")
		return nil, false
	}
	node, ok := d.tree.Resolve(at)
	if !ok {
		logging.FromContext(ctx).Debug().Str("path", path).Msg("path not found")
	}
	return node, ok
}

func (d *Docker) panelAt(ctx context.Context, path string) (*entity.Panel, bool) {
	node, ok := d.resolve(ctx, path)
	if !ok {
		return nil, false
	}
	p, isPanel := node.(*entity.Panel)
	if !isPanel {
		logging.FromContext(ctx).Debug().Str("path", path).Str("kind", node.Kind().String()).Msg("not a panel")
		return nil, false
	}
	return p, true
}

// activate shows p, switching its stack's visible panel when it has one.
func (d *Docker) activate(ctx context.Context, p *entity.Panel) {
	if parent, ok := d.tree.ParentOf(p.Path); ok {
		if stack, isStack := parent.(*entity.Stack); isStack {
			d.lifecycle.Activate(ctx, stack, stack.IndexOf(p))
			return
		}
	}
	d.lifecycle.Show(ctx, p, nil)
}

func (d *Docker) removePanel(ctx context.Context, p *entity.Panel) {
	if node, ok := d.tree.Resolve(p.Path); ok {
		if same, isPanel := node.(*entity.Panel); isPanel && same == p {
			if _, err := d.tree.Assign(p.Path, nil); err != nil {
				logging.FromContext(ctx).Warn().Err(err).Str("panel_id", p.ID).Msg("clear panel slot")
			}
		}
	}
	d.arrangeAndRedraw(ctx)
}

func (d *Docker) arrangeAndRedraw(ctx context.Context) {
	ArrangeTree(d.tree)
	d.redraw(ctx)
}

// redraw renders the tree, then lets the lifecycle catch up with what became
// visible. Redraws requested while one is running are folded into one more
// pass.
func (d *Docker) redraw(ctx context.Context) {
	if d.drawing {
		d.dirty = true
		return
	}
	d.drawing = true
	defer func() { d.drawing = false }()

	for {
		d.dirty = false
		Reindex(d.tree)
		if err := d.cfg.Target.Render(ctx, d.tree); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("render failed")
		}
		d.lifecycle.Sync(ctx, d.tree)
		if !d.dirty {
			break
		}
	}

	d.scheduleAlign(ctx)
	if !d.loaded {
		d.loaded = true
		if d.cfg.OnLoad != nil {
			d.cfg.OnLoad(ctx)
		}
	}
	if d.cfg.OnStateChanged != nil {
		d.cfg.OnStateChanged(ctx, d.tree)
	}
}

func (d *Docker) scheduleAlign(ctx context.Context) {
	aligner, ok := d.cfg.Target.(port.TabAligner)
	if !ok {
		return
	}
	if d.cfg.Realign == nil {
		aligner.AlignTabs(ctx)
		return
	}
	base := context.WithoutCancel(ctx)
	d.cfg.Realign.Post(alignTabsKey, func() {
		if !d.closed {
			aligner.AlignTabs(base)
		}
	})
}
