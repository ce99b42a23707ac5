package entity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildTreeFromSpec(t *testing.T) {
	specs := []NodeSpec{{
		Type: "row",
		Panels: []NodeSpec{
			{Type: "column", Panels: []NodeSpec{
				{Type: "panel", Name: "my name 1", ModuleName: "content", ModuleState: map[string]any{"data1": "data1"}},
				{Type: "panel", Name: "my name 2", ModuleName: "content"},
			}},
			{Type: "stack", Panels: []NodeSpec{
				{Type: "panel", Name: "my name 3", ModuleName: "content"},
			}},
		},
	}}

	tree, err := BuildTree(specs)
	require.NoError(t, err)
	require.Equal(t, KindRow, tree.Root.Kind())
	require.Equal(t, 3, tree.PanelCount())

	for _, p := range tree.AllPanels() {
		require.NotEmpty(t, p.ID, "panels get an id on build")
	}

	n, ok := tree.Resolve(Path{1, 0})
	require.True(t, ok)
	require.Equal(t, "my name 3", n.(*Panel).Name)
}

func TestBuildNodeRejectsCompositeUnderStack(t *testing.T) {
	_, err := BuildNode(NodeSpec{
		Type: "stack",
		Panels: []NodeSpec{
			{Type: "row", Panels: []NodeSpec{{Type: "panel"}}},
		},
	})
	require.ErrorIs(t, err, ErrStructure)

	_, err = BuildNode(NodeSpec{Type: "panel", Panels: []NodeSpec{{Type: "panel"}}})
	require.ErrorIs(t, err, ErrStructure)

	_, err = BuildNode(NodeSpec{Type: "grid"})
	require.ErrorIs(t, err, ErrUnknownNodeType)
}

func TestBuildTreeEmpty(t *testing.T) {
	tree, err := BuildTree(nil)
	require.NoError(t, err)
	require.True(t, tree.IsEmpty())
	require.Empty(t, SnapshotTree(tree))
}

func TestSnapshotRoundTrip(t *testing.T) {
	specs := []NodeSpec{{
		Type:     "column",
		FlexGrow: 2,
		Panels: []NodeSpec{
			{Type: "panel", ID: "a", Name: "A", ModuleName: "m", FlexGrow: 1.5},
			{Type: "stack", Panels: []NodeSpec{
				{Type: "panel", ID: "b", Name: "B", Active: true},
				{Type: "panel", ID: "c", Name: "C", ModuleState: map[string]any{"k": "v"}},
			}},
		},
	}}

	tree, err := BuildTree(specs)
	require.NoError(t, err)

	if diff := cmp.Diff(specs, SnapshotTree(tree)); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}
