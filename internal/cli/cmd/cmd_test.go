package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/bnema/dockpane/internal/domain/entity"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const layoutYAML = `
theme: light
panels:
  - type: row
    panels:
      - type: panel
        id: A
        name: A
        module_name: text
        module_state:
          text: alpha
      - type: stack
        panels:
          - {type: panel, id: B, name: B, module_name: text}
          - {type: panel, id: C, name: C, module_name: text}
`

func writeLayout(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(layoutYAML), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(BuildInfo{Version: "test"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decodeTree(t *testing.T, out string) entity.NodeSpec {
	t.Helper()
	var doc struct {
		Panels []entity.NodeSpec `yaml:"panels"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc), out)
	require.Len(t, doc.Panels, 1)
	return doc.Panels[0]
}

func ids(specs []entity.NodeSpec) []string {
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		out = append(out, s.ID)
	}
	return out
}

func TestRender_Text(t *testing.T) {
	layout := writeLayout(t)

	out, err := execute(t, "--config", layout, "--log-level", "disabled", "render", "--width", "31", "--height", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, " B X  C X ")
}

func TestRender_YAML(t *testing.T) {
	layout := writeLayout(t)

	out, err := execute(t, "--config", layout, "--log-level", "disabled", "render", "-o", "yaml")
	require.NoError(t, err)

	root := decodeTree(t, out)
	assert.Equal(t, "row", root.Type)
	require.Len(t, root.Panels, 2)
	assert.Equal(t, "stack", root.Panels[1].Type)
	assert.Equal(t, []string{"B", "C"}, ids(root.Panels[1].Panels))
	assert.True(t, root.Panels[1].Panels[0].Active)
}

func TestDock(t *testing.T) {
	layout := writeLayout(t)

	out, err := execute(t, "--config", layout, "--log-level", "disabled",
		"dock", "0.1", "stack", "X", "--id", "X", "-o", "yaml")
	require.NoError(t, err)
	stack := decodeTree(t, out).Panels[1]
	assert.ElementsMatch(t, []string{"B", "C", "X"}, ids(stack.Panels))

	out, err = execute(t, "--config", layout, "--log-level", "disabled",
		"dock", "panels[0].panels[0]", "column-bottom", "Y", "--id", "Y", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "column"`)
	assert.Contains(t, out, `"id": "Y"`)
}

func TestDock_Errors(t *testing.T) {
	layout := writeLayout(t)

	_, err := execute(t, "--config", layout, "--log-level", "disabled", "dock", "0", "sideways", "X")
	assert.ErrorContains(t, err, "unknown dock direction")

	_, err = execute(t, "--config", layout, "--log-level", "disabled", "dock", "0.7", "stack", "X")
	assert.ErrorContains(t, err, "no node")

	_, err = execute(t, "--config", layout, "--log-level", "disabled", "render", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestClose_CollapsesRow(t *testing.T) {
	layout := writeLayout(t)

	out, err := execute(t, "--config", layout, "--log-level", "disabled", "close", "0.0", "-o", "yaml")
	require.NoError(t, err)
	root := decodeTree(t, out)
	assert.Equal(t, "stack", root.Type)
	assert.Equal(t, []string{"B", "C"}, ids(root.Panels))
}

func TestActivate_StackIndex(t *testing.T) {
	layout := writeLayout(t)

	out, err := execute(t, "--config", layout, "--log-level", "disabled", "activate", "0.1", "--index", "1", "-o", "yaml")
	require.NoError(t, err)
	stack := decodeTree(t, out).Panels[1]
	assert.False(t, stack.Panels[0].Active)
	assert.True(t, stack.Panels[1].Active)
}

func TestClassify(t *testing.T) {
	out, err := execute(t, "classify", "--rect", "0,0,90,30", "--point", "10,15")
	require.NoError(t, err)
	assert.Equal(t, "zone row=1 col=0 direction=row-left\n", out)

	out, err = execute(t, "classify", "--rect", "0,0,90,30", "--point", "45,15")
	require.NoError(t, err)
	assert.Contains(t, out, "direction=stack")

	_, err = execute(t, "classify", "--rect", "0,0,90,30", "--point", "95,15")
	assert.ErrorContains(t, err, "outside")
}

func TestSchemaAndInit(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "dockpane layout")

	path := filepath.Join(t.TempDir(), "conf", "layout.toml")
	out, err = execute(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(filepath.Dir(path), "layout.schema.json"))
}
