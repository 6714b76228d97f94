package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/cloudmanager"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

// Configuration keys that are redacted from the startup printout.
const (
	Credentials = "credentials"
)

type Config struct {
	Actions               bool   `json:"actions"`
	ConfigFile            string `json:"config"`
	Credentials           string `json:"credentials"`
	Imports               string `json:"imports"`
	Kind                  string `json:"kind"`
	Name                  string `json:"name"`
	OtelCollectorEndpoint string `json:"otel-collector-endpoint"`
	Project               string `json:"project"`
	Quiet                 bool   `json:"quiet"`
	RootURL               string `json:"root-url"`
	ServicePath           string `json:"service-path"`
	Workspace             string `json:"workspace"`
}

var (
	ErrNameRequired   = errors.New("deployment name required; specify with --name")
	ErrConfigRequired = errors.New("deployment configuration file required; specify with --config")
)

func Initialize() *Config {
	cfg := &Config{}

	flag.BoolVar(&cfg.Actions, "actions", false, "Use GitHub Actions compatible error and warning messages.")
	flag.StringVar(&cfg.ConfigFile, "config", "", "Path to the deployment configuration file, relative to the workspace.")
	flag.StringVar(&cfg.Credentials, "credentials", "", "Path to a service account key file. Uses application default credentials when unset.")
	flag.StringVar(&cfg.Imports, "imports", "", "Comma-separated list of import file paths, relative to the workspace.")
	flag.StringVar(&cfg.Kind, "kind", deployment.KindTemplated, fmt.Sprintf("Deployment kind. One of %v.", deployment.Kinds(deployment.ConsumerSingleAction)))
	flag.StringVar(&cfg.Name, "name", "", "Name of the deployment. Environment variable references are resolved.")
	flag.StringVar(&cfg.OtelCollectorEndpoint, "otel-collector-endpoint", "", "OpenTelemetry collector endpoint. Tracing is disabled when unset.")
	flag.StringVar(&cfg.Project, "project", "", "Google Cloud project id. Detected from the credentials when unset.")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "Suppress printing of informational messages except errors.")
	flag.StringVar(&cfg.RootURL, "root-url", cloudmanager.DefaultRootURL, "Root URL of the Deployment Manager API.")
	flag.StringVar(&cfg.ServicePath, "service-path", cloudmanager.DefaultServicePath, "Service path of the Deployment Manager API.")
	flag.StringVar(&cfg.Workspace, "workspace", ".", "Directory that configuration and import paths are resolved against.")

	return cfg
}

func (cfg *Config) Validate() error {
	if len(cfg.Name) == 0 {
		return ErrNameRequired
	}

	if cfg.Kind == deployment.KindTemplated && len(cfg.ConfigFile) == 0 {
		return ErrConfigRequired
	}

	return nil
}
