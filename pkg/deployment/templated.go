package deployment

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Templated is a deployment whose resources are described by a configuration
// file plus an optional set of imported files, all living under a workspace
// root. The configuration path, the import paths and the deployment name may
// all contain $VAR references.
type Templated struct {
	*Deployment

	// ConfigFilePath is the workspace-relative path to the configuration.
	ConfigFilePath string
	// ImportPaths is a comma-separated list of workspace-relative paths of
	// files to import into the configuration.
	ImportPaths string
}

func NewTemplated(credentialsFile, name string, module Module, configFilePath, importPaths string) *Templated {
	return &Templated{
		Deployment:     New(credentialsFile, name, module),
		ConfigFilePath: configFilePath,
		ImportPaths:    importPaths,
	}
}

// InsertFromWorkspace resolves the configuration and import paths against
// the workspace root, reads the configuration, and runs Insert. The resolved
// deployment name must match the accepted character set.
func (t *Templated) InsertFromWorkspace(ctx context.Context, workspace string, env Environment, sink *log.Entry) error {
	if err := ValidateName(env.Resolve(t.Name())); err != nil {
		return err
	}

	configPath := filepath.Join(workspace, env.Resolve(t.ConfigFilePath))
	contents, err := os.ReadFile(configPath)
	if err != nil {
		return ErrorWrap(ExitConfigError, &ConfigReadError{Path: configPath, Err: err})
	}

	paths := SplitList(t.ImportPaths)
	imports := make([]ImportMapping, 0, len(paths))
	for _, p := range paths {
		resolved := filepath.Join(workspace, env.Resolve(p))
		imports = append(imports, ImportMapping{
			Name: filepath.Base(resolved),
			Path: resolved,
		})
	}

	return t.Insert(ctx, string(contents), imports, env, sink)
}
