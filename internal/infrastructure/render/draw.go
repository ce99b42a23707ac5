package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockpane/internal/domain/entity"
)

const emptyMessage = "no panels"

func draw(l *Layout, th *Theme, content map[string]string) string {
	if l.Width == 0 || l.Height == 0 {
		return ""
	}
	if l.Root == nil {
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, th.Empty.Render(emptyMessage))
	}
	return drawBox(l.Root, th, content)
}

func drawBox(b *Box, th *Theme, content map[string]string) string {
	w, h := b.cells.w, b.cells.h
	if h == 0 {
		return ""
	}
	if w == 0 {
		return blank(0, h)
	}

	switch b.Kind {
	case entity.KindPanel:
		return th.Panel.
			Width(w).Height(h).
			MaxWidth(w).MaxHeight(h).
			Render(content[b.PanelID])
	case entity.KindStack:
		bar := drawTabBar(b, th)
		if h == 1 {
			return bar
		}
		body := blank(w, h-1)
		if len(b.Children) == 1 {
			body = drawBox(b.Children[0], th, content)
		}
		return lipgloss.JoinVertical(lipgloss.Left, bar, body)
	default:
		return drawSplit(b, th, content)
	}
}

func drawSplit(b *Box, th *Theme, content map[string]string) string {
	row := b.Kind == entity.KindRow
	parts := make([]string, 0, 2*len(b.Children))
	for i, child := range b.Children {
		if i > 0 {
			if handle := drawHandle(b.Handles[i-1], row, th); handle != "" {
				parts = append(parts, handle)
			}
		}
		if child.cells.w == 0 || child.cells.h == 0 {
			continue
		}
		parts = append(parts, drawBox(child, th, content))
	}
	if row {
		return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func drawHandle(hb HandleBox, row bool, th *Theme) string {
	w, h := int(hb.Rect.W), int(hb.Rect.H)
	if w == 0 || h == 0 {
		return ""
	}
	if row {
		return th.Handle.Render(strings.TrimSuffix(strings.Repeat("│\n", h), "\n"))
	}
	return th.Handle.Render(strings.Repeat("─", w))
}

func drawTabBar(b *Box, th *Theme) string {
	var sb strings.Builder
	used := 0
	for _, t := range b.Tabs {
		w := int(t.Rect.W)
		style := th.InactiveTab
		if t.Active {
			style = th.ActiveTab
		}
		sb.WriteString(style.MaxWidth(w).Render(t.Label))
		used += w
	}

	moreW := 0
	if b.More != nil {
		moreW = int(b.More.Rect.W)
	}
	if gap := b.cells.w - used - moreW; gap > 0 {
		sb.WriteString(th.TabBar.Render(strings.Repeat(" ", gap)))
	}
	if b.More != nil && moreW > 0 {
		sb.WriteString(th.More.MaxWidth(moreW).Render(b.More.label))
	}
	return sb.String()
}

func blank(w, h int) string {
	if h <= 0 {
		return ""
	}
	line := strings.Repeat(" ", w)
	return strings.TrimSuffix(strings.Repeat(line+"\n", h), "\n")
}
