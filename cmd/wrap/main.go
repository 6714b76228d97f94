package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

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

	// A failing wrapped command passes its exit status through unchanged.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		log.Errorf("wrapped command failed: %s", err)
		os.Exit(exitErr.ExitCode())
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
	log.Infof("deploy-manager wrap %s", version.Version())
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

	command := flag.Args()
	if len(command) == 0 {
		return deployment.ErrorWrap(deployment.ExitInvocationFailure, ErrCommandRequired)
	}

	if cfg.OtelCollectorEndpoint != "" {
		tracerProvider, err := telemetry.New(ctx, "wrap", cfg.OtelCollectorEndpoint)
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
		deployment.KindTemplated,
		deployment.ConsumerPaired,
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

	// Refuse to adopt a deployment someone else created. Tearing it down
	// after the wrapped command would destroy state we do not own.
	dep := deployment.New(cfg.Credentials, cfg.Name, module)
	exists, err := dep.Exists(ctx, env)
	if err != nil {
		return err
	}
	if exists {
		return deployment.Errorf(deployment.ExitDeploymentFailure, "deployment %s already exists; refusing to manage it", dep.Name())
	}

	err = variant.InsertFromWorkspace(ctx, cfg.Workspace, env, sink)
	if err != nil {
		return err
	}

	commandErr := runCommand(ctx, command)

	err = variant.Delete(ctx, env, sink)
	if err != nil {
		if commandErr != nil {
			log.Errorf("tearing down deployment: %s", err)
			return commandErr
		}
		return err
	}

	return commandErr
}

func runCommand(ctx context.Context, args []string) error {
	log.Infof("Running command: %v", args)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("command exited with status %d: %w", exitErr.ExitCode(), err)
		}
		return deployment.ErrorWrap(deployment.ExitInvocationFailure, err)
	}

	return nil
}
