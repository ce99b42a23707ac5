// Package render draws a panel tree as text with lipgloss and reports the
// geometry needed to hit-test tabs, splitters and drop targets.
package render

import (
	"context"
	"sync"

	"github.com/bnema/dockpane/internal/application/port"
	"github.com/bnema/dockpane/internal/domain/entity"
	"github.com/bnema/dockpane/internal/logging"
)

// Icons are the tab bar glyphs.
type Icons struct {
	Close string
	More  string
}

// Options configures a Renderer.
type Options struct {
	Width, Height int
	Theme         string
	Icons         Icons
	// OnFrame receives every new frame. It runs on the goroutine that caused
	// the frame and must not block.
	OnFrame func(frame string, layout *Layout)
}

// Renderer implements port.Renderer and port.TabAligner for terminals.
// Frames are kept as strings; panel content is kept per panel ID so modules
// may update it at any time.
type Renderer struct {
	mu      sync.Mutex
	width   int
	height  int
	theme   *Theme
	icons   Icons
	onFrame func(string, *Layout)

	content map[string]string
	offsets map[*entity.Stack]int
	layout  *Layout
	frame   string
}

var (
	_ port.Renderer   = (*Renderer)(nil)
	_ port.TabAligner = (*Renderer)(nil)
)

// New creates a renderer.
func New(opts Options) *Renderer {
	theme, _ := NewTheme(opts.Theme)
	icons := opts.Icons
	if icons.Close == "" {
		icons.Close = "X"
	}
	if icons.More == "" {
		icons.More = "..."
	}
	return &Renderer{
		width:   opts.Width,
		height:  opts.Height,
		theme:   theme,
		icons:   icons,
		onFrame: opts.OnFrame,
		content: make(map[string]string),
		offsets: make(map[*entity.Stack]int),
		layout:  &Layout{},
	}
}

// Render lays the tree out and draws a frame.
func (r *Renderer) Render(ctx context.Context, tree *entity.Tree) error {
	r.mu.Lock()
	layout := buildLayout(tree, r.width, r.height, r.icons, r.offsets)
	r.offsets = layout.offsets()
	r.pruneContent(tree)
	frame := r.publishLocked(layout)
	onFrame := r.onFrame
	r.mu.Unlock()

	logging.FromContext(ctx).Trace().
		Int("width", layout.Width).
		Int("height", layout.Height).
		Int("panels", tree.PanelCount()).
		Msg("frame rendered")

	if onFrame != nil {
		onFrame(frame, layout)
	}
	return nil
}

// AlignTabs scrolls every overflowing tab bar so its active tab shows.
func (r *Renderer) AlignTabs(ctx context.Context) {
	r.mu.Lock()
	if r.layout.Root == nil {
		r.mu.Unlock()
		return
	}
	layout := r.layout.clone()
	moved := 0
	layout.Walk(func(b *Box) bool {
		if b.stack != nil && b.alignActiveTab(r.icons.More) {
			moved++
		}
		return true
	})
	if moved == 0 {
		r.mu.Unlock()
		return
	}
	r.offsets = layout.offsets()
	frame := r.publishLocked(layout)
	onFrame := r.onFrame
	r.mu.Unlock()

	logging.FromContext(ctx).Debug().Int("stacks", moved).Msg("tab bars realigned")
	if onFrame != nil {
		onFrame(frame, layout)
	}
}

// Surface returns the content area of panel.
func (r *Renderer) Surface(panel *entity.Panel) port.Surface {
	return &surface{r: r, id: panel.ID}
}

// Resize sets the frame size used by the next Render.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Frame returns the last frame and its layout.
func (r *Renderer) Frame() (string, *Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame, r.layout
}

// Content returns what was last written to a panel's surface.
func (r *Renderer) Content(panelID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content[panelID]
}

func (r *Renderer) setContent(id, content string) {
	r.mu.Lock()
	if r.content[id] == content {
		r.mu.Unlock()
		return
	}
	r.content[id] = content
	if _, visible := r.layout.PanelBox(id); !visible {
		r.mu.Unlock()
		return
	}
	layout := r.layout
	frame := r.publishLocked(layout)
	onFrame := r.onFrame
	r.mu.Unlock()

	if onFrame != nil {
		onFrame(frame, layout)
	}
}

func (r *Renderer) publishLocked(layout *Layout) string {
	r.layout = layout
	r.frame = draw(layout, r.theme, r.content)
	return r.frame
}

func (r *Renderer) pruneContent(tree *entity.Tree) {
	live := make(map[string]struct{}, len(r.content))
	for _, p := range tree.AllPanels() {
		live[p.ID] = struct{}{}
	}
	for id := range r.content {
		if _, ok := live[id]; !ok {
			delete(r.content, id)
		}
	}
}

type surface struct {
	r  *Renderer
	id string
}

func (s *surface) SetContent(content string) { s.r.setContent(s.id, content) }
