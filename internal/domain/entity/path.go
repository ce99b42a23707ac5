package entity

import (
	"strconv"
	"strings"
)

// Path addresses a node by the child indices walked from the root.
// The root itself is the empty path.
type Path []int

// RootPath is the path of the tree root.
var RootPath = Path{}

// String serializes the path as panels[0].panels[i]...; the leading
// panels[0] is the root slot.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("panels[0]")
	for _, i := range p {
		b.WriteString(".panels[")
		b.WriteString(strconv.Itoa(i))
		b.WriteByte(']')
	}
	return b.String()
}

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Parent returns the parent path. The root's parent is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return RootPath
	}
	return p[:len(p)-1:len(p)-1]
}

// Index returns the node's index among its parent's children, or -1 for the
// root.
func (p Path) Index() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Child returns the path of the i-th child.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Equal reports whether two paths address the same slot.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// ParsePath decodes a path string. It accepts the canonical form
// "panels[0].panels[1]" and the shorthand "0.1". The first index is the root
// slot and must be 0. An empty string or "undefined" addresses the root.
func ParsePath(s string) (Path, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "undefined" {
		return RootPath, true
	}

	var indices []int
	for _, seg := range strings.Split(s, ".") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, false
		}
		if strings.HasPrefix(seg, "panels[") {
			if !strings.HasSuffix(seg, "]") {
				return nil, false
			}
			seg = seg[len("panels[") : len(seg)-1]
		}
		if seg == "" || seg[0] < '0' || seg[0] > '9' {
			return nil, false
		}
		n, err := strconv.Atoi(seg)
		if err != nil {
			return nil, false
		}
		indices = append(indices, n)
	}
	if len(indices) == 0 || indices[0] != 0 {
		return nil, false
	}
	return Path(indices[1:]), true
}

