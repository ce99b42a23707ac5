package port

import (
	"context"

	"github.com/bnema/dockpane/internal/domain/entity"
)

// Phase is a panel lifecycle transition.
type Phase string

const (
	PhaseInit     Phase = "init"
	PhaseActive   Phase = "active"
	PhaseDeactive Phase = "deactive"
	PhaseDestroy  Phase = "destroy"
)

// Container is handed to module hooks: the panel and its mounted surface.
// Surface is nil when the renderer has not mounted the panel.
type Container struct {
	Panel   *entity.Panel
	Surface Surface
}

// ModuleHook runs one lifecycle phase. state is a copy of the panel's
// module state merged with its name.
type ModuleHook func(ctx context.Context, c Container, state map[string]any)

// ModuleFuncs is a pluggable content handler. Nil hooks fall back to the
// default module.
type ModuleFuncs struct {
	Init     ModuleHook
	Active   ModuleHook
	Deactive ModuleHook
	Destroy  ModuleHook
}

// Hook returns the hook for phase, or nil.
func (m ModuleFuncs) Hook(phase Phase) ModuleHook {
	switch phase {
	case PhaseInit:
		return m.Init
	case PhaseActive:
		return m.Active
	case PhaseDeactive:
		return m.Deactive
	case PhaseDestroy:
		return m.Destroy
	default:
		return nil
	}
}

// Merge returns m with every non-nil hook of o applied on top.
func (m ModuleFuncs) Merge(o ModuleFuncs) ModuleFuncs {
	if o.Init != nil {
		m.Init = o.Init
	}
	if o.Active != nil {
		m.Active = o.Active
	}
	if o.Deactive != nil {
		m.Deactive = o.Deactive
	}
	if o.Destroy != nil {
		m.Destroy = o.Destroy
	}
	return m
}
