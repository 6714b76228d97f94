package deployment

import (
	"os"
	"regexp"
	"strings"

	dm "google.golang.org/api/deploymentmanager/v2"
)

// ValidNameChars is the character set Deployment Manager accepts for
// deployment names.
const ValidNameChars = "[-a-zA-Z0-9_]{1,64}"

var nameRegexp = regexp.MustCompile("^" + ValidNameChars + "$")

// ValidateName checks a resolved deployment name against the accepted
// character set. Deployments targeting names created by other tooling (the
// deleter kind) skip this check.
func ValidateName(name string) error {
	if len(name) == 0 {
		return Errorf(ExitInvocationFailure, "deployment name is empty after variable resolution")
	}
	if !nameRegexp.MatchString(name) {
		return Errorf(ExitInvocationFailure, "deployment name %q must match %s", name, ValidNameChars)
	}
	return nil
}

// ImportMapping names one auxiliary file submitted alongside the main
// configuration. Name is the import name referenced from the configuration;
// Path is the resolved location on disk.
type ImportMapping struct {
	Name string
	Path string
}

// BuildSpec assembles the insert payload from the main configuration
// contents and the import files. Every import is read in full, in order; any
// unreadable import aborts the build with a ConfigReadError, and no partial
// spec is ever returned.
func BuildSpec(name, configContents string, imports []ImportMapping) (*dm.Deployment, error) {
	files := make([]*dm.ImportFile, 0, len(imports))
	for _, imp := range imports {
		content, err := os.ReadFile(imp.Path)
		if err != nil {
			return nil, &ConfigReadError{Path: imp.Path, Err: err}
		}
		files = append(files, &dm.ImportFile{
			Name:    imp.Name,
			Content: string(content),
		})
	}

	return &dm.Deployment{
		Name: name,
		Target: &dm.TargetConfiguration{
			Config:  &dm.ConfigFile{Content: configContents},
			Imports: files,
		},
	}, nil
}

// SplitList splits a comma separated list of paths, ignoring whitespace
// around each comma. An empty or all-whitespace input yields no elements.
func SplitList(commaSeparated string) []string {
	if strings.TrimSpace(commaSeparated) == "" {
		return []string{}
	}
	parts := strings.Split(commaSeparated, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
