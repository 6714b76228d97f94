package deployment_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

func TestSplitList(t *testing.T) {
	for input, expected := range map[string][]string{
		"":            {},
		"   ":         {},
		"one":         {"one"},
		"one,two":     {"one", "two"},
		" one , two ": {"one", "two"},
		"one,,two":    {"one", "", "two"},
	} {
		assert.Equal(t, expected, deployment.SplitList(input), "input: %q", input)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, deployment.ValidateName("test-deployment_7"))
	assert.NoError(t, deployment.ValidateName(strings.Repeat("a", 64)))

	assert.Error(t, deployment.ValidateName(""))
	assert.Error(t, deployment.ValidateName(strings.Repeat("a", 65)))
	assert.Error(t, deployment.ValidateName("no spaces allowed"))
	assert.Error(t, deployment.ValidateName("no/slashes"))
}

func TestBuildSpec(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "vm.jinja")
	second := filepath.Join(dir, "network.jinja")
	assert.NoError(t, os.WriteFile(first, []byte("vm contents"), 0o644))
	assert.NoError(t, os.WriteFile(second, []byte("network contents"), 0o644))

	spec, err := deployment.BuildSpec("my-deployment", "resources: []", []deployment.ImportMapping{
		{Name: "vm.jinja", Path: first},
		{Name: "network.jinja", Path: second},
	})

	assert.NoError(t, err)
	assert.Equal(t, "my-deployment", spec.Name)
	assert.Equal(t, "resources: []", spec.Target.Config.Content)
	assert.Len(t, spec.Target.Imports, 2)
	assert.Equal(t, "vm.jinja", spec.Target.Imports[0].Name)
	assert.Equal(t, "vm contents", spec.Target.Imports[0].Content)
	assert.Equal(t, "network.jinja", spec.Target.Imports[1].Name)
	assert.Equal(t, "network contents", spec.Target.Imports[1].Content)
}

func TestBuildSpecUnreadableImport(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.jinja")

	spec, err := deployment.BuildSpec("my-deployment", "resources: []", []deployment.ImportMapping{
		{Name: "missing.jinja", Path: missing},
	})

	assert.Nil(t, spec)
	readError := &deployment.ConfigReadError{}
	assert.ErrorAs(t, err, &readError)
	assert.Equal(t, missing, readError.Path)
}
