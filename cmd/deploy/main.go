package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/cloudmanager"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/conftools"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/logging"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/telemetry"
	"github.com/GoogleCloudPlatform/deploy-manager/pkg/version"
)

var maskedConfig = []string{
	Credentials,
}

func main() {
	err := run()
	if err == nil {
		return
	}
	code := deployment.ErrorExitCode(err)
	if code == deployment.ExitInvocationFailure {
		flag.Usage()
	}
	log.Errorf("fatal: %s", err)
	os.Exit(int(code))
}

func run() error {
	ctx := context.Background()

	cfg := Initialize()
	err := conftools.Load(cfg)
	if err != nil {
		return deployment.ErrorWrap(deployment.ExitInvocationFailure, err)
	}

	logging.Setup(cfg.Quiet, cfg.Actions)

	// Welcome
	log.Infof("deploy-manager %s", version.Version())
	ts, err := version.BuildTime()
	if err == nil {
		log.Infof("This version was built %s", ts.Local())
	}

	for _, line := range conftools.Format(maskedConfig) {
		log.Info(line)
	}

	err = cfg.Validate()
	if err != nil {
		return deployment.ErrorWrap(deployment.ExitInvocationFailure, err)
	}

	if cfg.OtelCollectorEndpoint != "" {
		tracerProvider, err := telemetry.New(ctx, "deploy", cfg.OtelCollectorEndpoint)
		if err != nil {
			return deployment.ErrorWrap(deployment.ExitInvocationFailure, err)
		}
		defer func() {
			err := tracerProvider.Shutdown(ctx)
			if err != nil {
				log.Error(err)
			}
		}()
	}

	module := &cloudmanager.Module{
		Project:     cfg.Project,
		RootURL:     cfg.RootURL,
		ServicePath: cfg.ServicePath,
	}

	variant, err := deployment.NewVariant(
		cfg.Kind,
		deployment.ConsumerSingleAction,
		cfg.Credentials,
		cfg.Name,
		module,
		cfg.ConfigFile,
		cfg.Imports,
	)
	if err != nil {
		return deployment.ErrorWrap(deployment.ExitInvocationFailure, err)
	}

	env := deployment.OSEnvironment()
	sink := log.WithField("deployment", cfg.Name)

	return variant.InsertFromWorkspace(ctx, cfg.Workspace, env, sink)
}
