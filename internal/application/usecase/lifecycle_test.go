package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/application/port/mocks"
	"github.com/bnema/dockpane/internal/domain/entity"
)

// lifecycleHarness records hook calls and holds posted work until drain.
type lifecycleHarness struct {
	calls   []string
	posted  []func(context.Context)
	changed int
	removed []*entity.Panel
}

func (h *lifecycleHarness) deps() LifecycleDeps {
	return LifecycleDeps{
		Post: func(fn func(context.Context)) bool {
			h.posted = append(h.posted, fn)
			return true
		},
		Changed: func(context.Context) { h.changed++ },
		Removed: func(_ context.Context, p *entity.Panel) { h.removed = append(h.removed, p) },
	}
}

func (h *lifecycleHarness) drain(ctx context.Context) {
	for len(h.posted) > 0 {
		fn := h.posted[0]
		h.posted = h.posted[1:]
		fn(ctx)
	}
}

func (h *lifecycleHarness) module() port.ModuleFuncs {
	record := func(phase string) port.ModuleHook {
		return func(_ context.Context, c port.Container, _ map[string]any) {
			h.calls = append(h.calls, fmt.Sprintf("%s:%s", phase, c.Panel.Name))
		}
	}
	return port.ModuleFuncs{
		Init:     record("init"),
		Active:   record("active"),
		Deactive: record("deactive"),
		Destroy:  record("destroy"),
	}
}

func shownStack() (*entity.Stack, *entity.Panel, *entity.Panel) {
	a, b := pn("A"), pn("B")
	a.Active = true
	a.Built = true
	a.SetShown(true)
	return stack(a, b), a, b
}

func TestLifecycle_ActivateWithoutGate(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	l := NewLifecycle(h.deps(), Control{})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	s, a, b := shownStack()
	l.Activate(ctx, s, 1)

	assert.Equal(t, []string{"deactive:A", "init:B", "active:B"}, h.calls)
	assert.False(t, a.Active)
	assert.False(t, a.Shown())
	assert.True(t, b.Active)
	assert.True(t, b.Built)
	assert.True(t, b.Shown())
	assert.Equal(t, 1, h.changed)
	assert.Empty(t, h.posted)

	h.calls = nil
	l.Activate(ctx, s, 1)
	assert.Empty(t, h.calls, "activating the visible panel again runs nothing")
}

func TestLifecycle_HookReceivesContainerAndState(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := mocks.NewMockSurface(ctrl)

	var gotState map[string]any
	var gotSurface port.Surface
	deps := (&lifecycleHarness{}).deps()
	deps.Surface = func(*entity.Panel) port.Surface { return surface }
	l := NewLifecycle(deps, Control{})
	l.AddModule(map[string]port.ModuleFuncs{
		"editor": {Init: func(_ context.Context, c port.Container, state map[string]any) {
			gotState = state
			gotSurface = c.Surface
		}},
	})

	p := &entity.Panel{ID: "p1", Name: "notes", ModuleName: "editor", ModuleState: map[string]any{"file": "a.txt"}}
	l.Show(context.Background(), p, nil)

	assert.Equal(t, map[string]any{"file": "a.txt", "name": "notes"}, gotState)
	assert.Same(t, surface, gotSurface)
	assert.NotContains(t, p.ModuleState, "name", "the panel's own state is not modified")
}

func TestLifecycle_DefaultModuleWritesName(t *testing.T) {
	ctrl := gomock.NewController(t)
	surface := mocks.NewMockSurface(ctrl)
	surface.EXPECT().SetContent("orphan").Times(1)

	deps := (&lifecycleHarness{}).deps()
	deps.Surface = func(*entity.Panel) port.Surface { return surface }
	l := NewLifecycle(deps, Control{})

	p := &entity.Panel{ID: "p1", Name: "orphan", ModuleName: "unregistered"}
	l.Show(context.Background(), p, nil)
	assert.True(t, p.Built)
	assert.True(t, p.Shown())
}

func TestLifecycle_AddModuleMergesPerPhase(t *testing.T) {
	ctx := context.Background()
	var calls []string
	l := NewLifecycle((&lifecycleHarness{}).deps(), Control{})

	l.AddModule(map[string]port.ModuleFuncs{
		"content": {Init: func(context.Context, port.Container, map[string]any) { calls = append(calls, "init-v1") }},
	})
	l.AddModule(map[string]port.ModuleFuncs{
		"content": {Active: func(context.Context, port.Container, map[string]any) { calls = append(calls, "active-v2") }},
	})

	l.Show(ctx, pn("A"), nil)
	assert.Equal(t, []string{"init-v1", "active-v2"}, calls)
}

func TestLifecycle_SynchronousGate(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	var afters []port.Phase
	l := NewLifecycle(h.deps(), Control{
		Before: func(_ context.Context, tr Transition, g Gate) {
			if tr.Phase == port.PhaseDeactive {
				g.Decline()
				return
			}
			g.Proceed()
			g.Decline() // ignored, first decision wins
		},
		After: func(_ context.Context, tr Transition) { afters = append(afters, tr.Phase) },
	})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	s, a, b := shownStack()
	l.Activate(ctx, s, 1)

	assert.Equal(t, []string{"init:B", "active:B"}, h.calls)
	assert.Equal(t, []port.Phase{port.PhaseInit, port.PhaseActive}, afters, "declined transitions fire no after hook")
	assert.True(t, a.Shown(), "declined deactivation leaves the panel untouched")
	assert.True(t, b.Active)
	assert.Empty(t, h.posted, "synchronous decisions apply inline")
}

func TestLifecycle_AsyncGateQueuesPerPanel(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	var gates []Gate
	var asked []string
	l := NewLifecycle(h.deps(), Control{
		Before: func(_ context.Context, tr Transition, g Gate) {
			asked = append(asked, fmt.Sprintf("%s:%s", tr.Phase, tr.Panel.Name))
			gates = append(gates, g)
		},
	})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	p := pn("A")
	l.Show(ctx, p, nil)

	assert.Equal(t, StateAwaitingGate, l.State(p.ID))
	assert.Equal(t, 1, l.Pending(p.ID), "active waits behind init")
	assert.Equal(t, []string{"init:A"}, asked)
	require.Len(t, gates, 1)

	gates[0].Proceed()
	assert.Empty(t, h.calls, "proceed only posts the apply step")
	require.Len(t, h.posted, 1)

	h.drain(ctx)
	assert.Equal(t, []string{"init:A"}, h.calls)
	assert.Equal(t, []string{"init:A", "active:A"}, asked, "queued request starts once the first applies")
	assert.Equal(t, StateAwaitingGate, l.State(p.ID))

	gates[1].Decline()
	h.drain(ctx)
	assert.Equal(t, []string{"init:A"}, h.calls)
	assert.False(t, p.Shown())
	assert.Equal(t, StateIdle, l.State(p.ID))
	assert.False(t, l.Busy(p.ID))
}

func TestLifecycle_GateDecidedFromAnotherGoroutine(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	gateCh := make(chan Gate, 1)
	l := NewLifecycle(h.deps(), Control{
		Before: func(_ context.Context, _ Transition, g Gate) { gateCh <- g },
	})

	p := pn("A")
	p.Built = true
	l.Show(ctx, p, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		(<-gateCh).Proceed()
	}()
	<-done

	h.drain(ctx)
	assert.True(t, p.Shown())
}

func TestLifecycle_DestroyDropsLaterRequests(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	l := NewLifecycle(h.deps(), Control{})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	p := pn("A")
	p.Built = true
	l.Destroy(ctx, p)

	assert.Equal(t, []string{"destroy:A"}, h.calls)
	assert.True(t, p.Removed())
	require.Len(t, h.removed, 1)
	assert.Same(t, p, h.removed[0])

	l.Show(ctx, p, nil)
	l.Destroy(ctx, p)
	assert.Equal(t, []string{"destroy:A"}, h.calls, "destroyed panels take no further transitions")
}

func TestLifecycle_DestroyWhileAwaitingGate(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	var gates []Gate
	l := NewLifecycle(h.deps(), Control{
		Before: func(_ context.Context, _ Transition, g Gate) { gates = append(gates, g) },
	})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	p := pn("A")
	p.Built = true
	l.Show(ctx, p, nil)
	l.Destroy(ctx, p)
	l.Show(ctx, p, nil)
	assert.Equal(t, 2, l.Pending(p.ID))

	gates[0].Proceed()
	h.drain(ctx)
	require.Len(t, gates, 2, "destroy asks the gate next")

	gates[1].Proceed()
	h.drain(ctx)
	assert.Equal(t, []string{"active:A", "destroy:A"}, h.calls)
	assert.Equal(t, StateIdle, l.State(p.ID))
	assert.Len(t, h.removed, 1)
}

func TestLifecycle_SyncShowsVisiblePanels(t *testing.T) {
	ctx := context.Background()
	h := &lifecycleHarness{}
	l := NewLifecycle(h.deps(), Control{})
	l.AddModule(map[string]port.ModuleFuncs{"content": h.module()})

	tree := entity.NewTree(entity.NewRow(pn("A"), stack(pn("B"), pn("C"))))
	ArrangeTree(tree)

	l.Sync(ctx, tree)
	assert.Equal(t, []string{"init:A", "active:A", "init:B", "active:B"}, h.calls)

	h.calls = nil
	l.Sync(ctx, tree)
	assert.Empty(t, h.calls, "already shown panels are left alone")
	assert.Zero(t, h.changed, "activating the stack's current panel does not ask for a redraw")
}
