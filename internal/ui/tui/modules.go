package tui

import (
	"context"
	"fmt"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/logging"
)

// TextModule is the module name of panels created from the keyboard.
const TextModule = "text"

// Modules returns the content handlers the terminal front end knows. A text
// panel shows its "text" state, or its name.
func Modules() map[string]port.ModuleFuncs {
	return map[string]port.ModuleFuncs{
		TextModule: {
			Init: func(ctx context.Context, c port.Container, state map[string]any) {
				if c.Surface == nil {
					return
				}
				text, ok := state["text"].(string)
				if !ok {
					text = fmt.Sprint(state["name"])
				}
				c.Surface.SetContent(text)
			},
			Destroy: func(ctx context.Context, c port.Container, _ map[string]any) {
				logging.FromContext(ctx).Debug().Msg("text panel destroyed")
			},
		},
	}
}
