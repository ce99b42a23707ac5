package usecase

import (
	"context"
	"maps"
	"sync"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/logging"
)

// Transition describes one lifecycle step handed to the control hooks.
type Transition struct {
	Panel *entity.Panel
	Phase port.Phase
}

// Gate lets a Before hook decide whether a transition runs. Both methods are
// idempotent, the first call wins, and either may be called from any
// goroutine.
type Gate interface {
	Proceed()
	Decline()
}

// Control holds the optional user hooks around every transition. Before
// must eventually call Proceed or Decline; until then the panel's later
// requests wait in line. After runs once per applied transition.
type Control struct {
	Before func(ctx context.Context, t Transition, g Gate)
	After  func(ctx context.Context, t Transition)
}

// TransitionState is where a panel is in its transition state machine.
type TransitionState int

const (
	StateIdle TransitionState = iota
	StateRequested
	StateAwaitingGate
	StateApplying
)

func (s TransitionState) String() string {
	switch s {
	case StateRequested:
		return "requested"
	case StateAwaitingGate:
		return "awaiting_gate"
	case StateApplying:
		return "applying"
	default:
		return "idle"
	}
}

// LifecycleDeps are the collaborators a Lifecycle calls back into. All of
// them run on the dispatcher goroutine.
type LifecycleDeps struct {
	// Post schedules work on the tree owner's goroutine.
	Post func(fn func(ctx context.Context)) bool
	// Surface returns the mounted surface of a panel, or nil.
	Surface func(p *entity.Panel) port.Surface
	// Changed is called when a transition changed what must be drawn.
	Changed func(ctx context.Context)
	// Removed is called after a panel's destroy transition applied.
	Removed func(ctx context.Context, p *entity.Panel)
}

type request struct {
	panel *entity.Panel
	phase port.Phase
	stack *entity.Stack
}

// settled reports whether the panel already is in the state r would put it
// in, which happens when the same request was queued twice.
func (r *request) settled() bool {
	p := r.panel
	switch r.phase {
	case port.PhaseInit:
		return p.Built
	case port.PhaseActive:
		return p.Shown() && (r.stack == nil || p.Active)
	case port.PhaseDeactive:
		return !p.Shown()
	}
	return false
}

type panelQueue struct {
	state   TransitionState
	pending []*request
}

// Lifecycle runs the init/active/deactive/destroy transitions of panels
// through the module registry and the user gate. At most one transition per
// panel is in flight; later requests for the same panel queue behind it.
// Every method must be called on the dispatcher goroutine.
type Lifecycle struct {
	deps    LifecycleDeps
	control Control

	modules       map[string]port.ModuleFuncs
	defaultModule port.ModuleFuncs

	queues    map[string]*panelQueue
	destroyed map[string]bool
}

// NewLifecycle creates a controller with the default module registered.
func NewLifecycle(deps LifecycleDeps, control Control) *Lifecycle {
	return &Lifecycle{
		deps:          deps,
		control:       control,
		modules:       make(map[string]port.ModuleFuncs),
		defaultModule: DefaultModule(),
		queues:        make(map[string]*panelQueue),
		destroyed:     make(map[string]bool),
	}
}

// DefaultModule is used for panels whose module has no handler for a phase.
// Its init writes the panel name into the surface.
func DefaultModule() port.ModuleFuncs {
	return port.ModuleFuncs{
		Init: func(_ context.Context, c port.Container, _ map[string]any) {
			if c.Surface != nil && c.Panel != nil {
				c.Surface.SetContent(c.Panel.Name)
			}
		},
	}
}

// AddModule merges handlers into the registry phase by phase.
func (l *Lifecycle) AddModule(modules map[string]port.ModuleFuncs) {
	for name, funcs := range modules {
		l.modules[name] = l.modules[name].Merge(funcs)
	}
}

// State reports the transition state of a panel.
func (l *Lifecycle) State(panelID string) TransitionState {
	if q, ok := l.queues[panelID]; ok {
		return q.state
	}
	return StateIdle
}

// Pending returns the number of requests waiting behind the in-flight one.
func (l *Lifecycle) Pending(panelID string) int {
	if q, ok := l.queues[panelID]; ok {
		return len(q.pending)
	}
	return 0
}

// Busy reports whether a panel has a transition in flight.
func (l *Lifecycle) Busy(panelID string) bool {
	return l.State(panelID) != StateIdle
}

// Activate makes stack.Panels[index] the visible panel: active siblings are
// deactivated, the target is built if needed and then activated.
func (l *Lifecycle) Activate(ctx context.Context, stack *entity.Stack, index int) {
	if stack == nil || index < 0 || index >= len(stack.Panels) {
		return
	}
	target := stack.Panels[index]
	for i, p := range stack.Panels {
		if i == index || p == nil {
			continue
		}
		if p.Shown() {
			l.request(ctx, &request{panel: p, phase: port.PhaseDeactive, stack: stack})
		}
	}
	l.Show(ctx, target, stack)
}

// Show builds p if needed and activates it. stack is p's enclosing stack, or
// nil.
func (l *Lifecycle) Show(ctx context.Context, p *entity.Panel, stack *entity.Stack) {
	if p == nil {
		return
	}
	if !p.Built {
		l.request(ctx, &request{panel: p, phase: port.PhaseInit, stack: stack})
	}
	l.request(ctx, &request{panel: p, phase: port.PhaseActive, stack: stack})
}

// Destroy runs p's destroy transition. Once applied the panel is marked
// removed and Removed is called.
func (l *Lifecycle) Destroy(ctx context.Context, p *entity.Panel) {
	if p == nil {
		return
	}
	l.request(ctx, &request{panel: p, phase: port.PhaseDestroy})
}

// Sync runs after a redraw: visible panels that were never built get their
// init, and visible panels not yet shown get their active transition.
// Panels with a transition in flight are left alone.
func (l *Lifecycle) Sync(ctx context.Context, tree *entity.Tree) {
	for _, p := range VisiblePanels(tree) {
		if l.Busy(p.ID) || l.destroyed[p.ID] {
			continue
		}
		if p.Built && p.Shown() {
			continue
		}
		var stack *entity.Stack
		if parent, ok := tree.ParentOf(p.Path); ok {
			stack, _ = parent.(*entity.Stack)
		}
		l.Show(ctx, p, stack)
	}
}

// Forget drops every queue and destroyed mark, used when the tree is
// replaced.
func (l *Lifecycle) Forget() {
	l.queues = make(map[string]*panelQueue)
	l.destroyed = make(map[string]bool)
}

func (l *Lifecycle) request(ctx context.Context, r *request) {
	id := r.panel.ID
	ctx = logging.WithPanelID(ctx, id)
	log := logging.FromContext(ctx)

	if l.destroyed[id] {
		log.Debug().Str("phase", string(r.phase)).Msg("transition for destroyed panel dropped")
		return
	}

	q, ok := l.queues[id]
	if !ok {
		q = &panelQueue{}
		l.queues[id] = q
	}
	if q.state != StateIdle {
		q.pending = append(q.pending, r)
		log.Debug().
			Str("phase", string(r.phase)).
			Str("state", q.state.String()).
			Int("queued", len(q.pending)).
			Msg("transition queued")
		return
	}
	l.start(ctx, q, r)
}

func (l *Lifecycle) start(ctx context.Context, q *panelQueue, r *request) {
	if r.settled() {
		l.finish(ctx, q, r)
		return
	}
	q.state = StateRequested
	if l.control.Before == nil {
		l.apply(ctx, q, r)
		return
	}

	q.state = StateAwaitingGate
	g := &gate{}
	l.control.Before(ctx, Transition{Panel: r.panel, Phase: r.phase}, g)

	g.mu.Lock()
	decision := g.decision
	if decision == gatePending {
		g.onDecide = func(d gateDecision) {
			posted := l.deps.Post(func(loopCtx context.Context) {
				l.decide(logging.WithPanelID(loopCtx, r.panel.ID), q, r, d)
			})
			if !posted {
				logging.FromContext(ctx).Debug().Msg("gate decided after shutdown")
			}
		}
	}
	g.mu.Unlock()

	if decision != gatePending {
		l.decide(ctx, q, r, decision)
	}
}

func (l *Lifecycle) decide(ctx context.Context, q *panelQueue, r *request, d gateDecision) {
	if d == gateProceed {
		l.apply(ctx, q, r)
		return
	}
	logging.FromContext(ctx).Debug().
		Str("phase", string(r.phase)).
		Msg("transition declined")
	l.finish(ctx, q, r)
}

func (l *Lifecycle) apply(ctx context.Context, q *panelQueue, r *request) {
	q.state = StateApplying
	p := r.panel

	if l.destroyed[p.ID] {
		l.finish(ctx, q, r)
		return
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("phase", string(r.phase)).Msg("applying transition")

	if hook := l.hook(p.ModuleName, r.phase); hook != nil {
		hook(ctx, l.container(p), moduleState(p))
	}

	changed := false
	switch r.phase {
	case port.PhaseInit:
		p.Built = true
	case port.PhaseActive:
		p.SetShown(true)
		if r.stack != nil && !p.Active {
			for _, sibling := range r.stack.Panels {
				if sibling != nil {
					sibling.Active = false
				}
			}
			p.Active = true
			changed = true
		}
	case port.PhaseDeactive:
		// The active flag moves when the replacement's active applies.
		p.SetShown(false)
	case port.PhaseDestroy:
		l.destroyed[p.ID] = true
		p.SetShown(false)
		p.MarkRemoved()
	}

	if l.control.After != nil {
		l.control.After(ctx, Transition{Panel: p, Phase: r.phase})
	}

	if r.phase == port.PhaseDestroy {
		// Nothing else may run for a destroyed panel.
		delete(l.queues, p.ID)
		if l.deps.Removed != nil {
			l.deps.Removed(ctx, p)
		}
		return
	}

	l.finish(ctx, q, r)
	if changed && l.deps.Changed != nil {
		l.deps.Changed(ctx)
	}
}

func (l *Lifecycle) finish(ctx context.Context, q *panelQueue, r *request) {
	q.state = StateIdle
	for len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		if l.destroyed[next.panel.ID] {
			continue
		}
		l.start(ctx, q, next)
		return
	}
	if q.state == StateIdle {
		delete(l.queues, r.panel.ID)
	}
}

func (l *Lifecycle) hook(moduleName string, phase port.Phase) port.ModuleHook {
	if m, ok := l.modules[moduleName]; ok {
		if h := m.Hook(phase); h != nil {
			return h
		}
	}
	return l.defaultModule.Hook(phase)
}

func (l *Lifecycle) container(p *entity.Panel) port.Container {
	c := port.Container{Panel: p}
	if l.deps.Surface != nil {
		c.Surface = l.deps.Surface(p)
	}
	return c
}

func moduleState(p *entity.Panel) map[string]any {
	state := maps.Clone(p.ModuleState)
	if state == nil {
		state = make(map[string]any, 1)
	}
	state["name"] = p.Name
	return state
}

type gateDecision int

const (
	gatePending gateDecision = iota
	gateProceed
	gateDecline
)

type gate struct {
	mu       sync.Mutex
	decision gateDecision
	onDecide func(gateDecision)
}

func (g *gate) Proceed() { g.decide(gateProceed) }
func (g *gate) Decline() { g.decide(gateDecline) }

func (g *gate) decide(d gateDecision) {
	g.mu.Lock()
	if g.decision != gatePending {
		g.mu.Unlock()
		return
	}
	g.decision = d
	onDecide := g.onDecide
	g.mu.Unlock()

	if onDecide != nil {
		onDecide(d)
	}
}
