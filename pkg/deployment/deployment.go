// Package deployment manages the lifecycle of Google Cloud Deployment
// Manager deployments: inserting a deployment from a configuration plus
// import files, deleting one, and in both cases polling the resulting
// asynchronous operation until it reaches a terminal state. A failed
// insertion is automatically rolled back by deleting whatever was created.
package deployment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	dm "google.golang.org/api/deploymentmanager/v2"
)

// MaxChecksUntilTimeout bounds the number of status fetches for a single
// operation. Together with the fixed sleep interval of the Service this
// forms the timeout contract for a lifecycle call.
const MaxChecksUntilTimeout = 100

var tracer = otel.Tracer("github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment")

// Deployment is one named deployment under lifecycle management. The name
// may contain $VAR references which are resolved against the caller's
// environment once per lifecycle call.
//
// Insert and Delete on the same instance serialize: a second call blocks
// until the first has completed.
type Deployment struct {
	credentialsFile string
	name            string
	module          Module

	mu sync.Mutex
	// logger is only valid for the duration of one lifecycle call, and is
	// reset on every exit path so a stale sink cannot leak into the next.
	logger *log.Entry
}

func New(credentialsFile, name string, module Module) *Deployment {
	return &Deployment{
		credentialsFile: credentialsFile,
		name:            name,
		module:          module,
	}
}

// Name returns the unresolved deployment name.
func (d *Deployment) Name() string {
	return d.name
}

// Insert creates the deployment described by the configuration contents and
// import files, and blocks until the remote operation terminates. If the
// insertion fails after submission for any reason, the deployment is
// automatically deleted again before the error is returned; both failures
// are then reported through a single InsertError.
//
// sink, when non-nil, receives human-readable progress lines for the
// duration of this call. A nil sink drops progress silently.
func (d *Deployment) Insert(ctx context.Context, configContents string, imports []ImportMapping, env Environment, sink *log.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setSink(sink)
	defer d.clearSink()

	ctx, span := tracer.Start(ctx, "deployment.Insert")
	defer span.End()

	name := env.Resolve(d.name)

	spec, err := BuildSpec(name, configContents, imports)
	if err != nil {
		d.logError("Invalid deployment specification: %s", err)
		return ErrorWrap(ExitConfigError, err)
	}

	svc, err := d.module.NewService(ctx, d.credentialsFile)
	if err != nil {
		return Errorf(ExitUnavailable, "connect to Deployment Manager: %s", err)
	}

	insertErr := d.create(ctx, svc, spec)
	if insertErr == nil {
		d.log("Deployment of %s complete.", name)
		return nil
	}

	d.logError("Deployment of %s failed: %s", name, insertErr)
	d.log("Rolling back the failed deployment...")

	if rollbackErr := d.remove(ctx, env); rollbackErr != nil {
		d.logError("Rollback of %s failed: %s", name, rollbackErr)
		return &InsertError{Err: insertErr, RollbackErr: rollbackErr}
	}

	d.log("Rollback complete.")
	return &InsertError{Err: insertErr}
}

// Delete tears down the deployment and blocks until the remote operation
// terminates. Deleting a deployment that does not exist is a success.
func (d *Deployment) Delete(ctx context.Context, env Environment, sink *log.Entry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.setSink(sink)
	defer d.clearSink()

	ctx, span := tracer.Start(ctx, "deployment.Delete")
	defer span.End()

	return d.remove(ctx, env)
}

// Exists reports whether the deployment currently exists remotely.
func (d *Deployment) Exists(ctx context.Context, env Environment) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := env.Resolve(d.name)

	svc, err := d.module.NewService(ctx, d.credentialsFile)
	if err != nil {
		return false, Errorf(ExitUnavailable, "connect to Deployment Manager: %s", err)
	}

	_, err = svc.GetDeployment(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		return false, nil
	case err != nil:
		return false, Errorf(ExitUnavailable, "fetch deployment: %s", err)
	}
	return true, nil
}

// create submits the insertion and waits for it to finish.
func (d *Deployment) create(ctx context.Context, svc Service, spec *dm.Deployment) error {
	op, err := svc.InsertDeployment(ctx, spec)
	switch {
	case err != nil:
		return Errorf(ExitUnavailable, "create deployment: %s", err)
	case op == nil:
		return Errorf(ExitInternalError, "create deployment %s: service returned no operation", spec.Name)
	}
	d.log("Created deployment %s in project %s.", spec.Name, svc.Project())

	return d.waitUntilDone(ctx, svc, op, true)
}

// remove is the deletion body shared by Delete and the insert rollback. The
// caller holds the instance lock.
func (d *Deployment) remove(ctx context.Context, env Environment) error {
	name := env.Resolve(d.name)

	svc, err := d.module.NewService(ctx, d.credentialsFile)
	if err != nil {
		return Errorf(ExitUnavailable, "connect to Deployment Manager: %s", err)
	}

	op, err := svc.DeleteDeployment(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		// Nothing left to delete. A retried delete can race its own earlier
		// submission, so this counts as success.
		d.log("Deployment %s does not exist; nothing to delete.", name)
		return nil
	case err != nil:
		return Errorf(ExitUnavailable, "delete deployment: %s", err)
	case op == nil:
		return Errorf(ExitInternalError, "delete deployment %s: service returned no operation", name)
	}
	d.log("Deleted deployment %s.", name)

	if err := d.waitUntilDone(ctx, svc, op, false); err != nil {
		return err
	}

	d.log("Deletion of %s complete.", name)
	return nil
}

// waitUntilDone polls the operation until it reports DONE, then inspects its
// error payload. Each fetch wholly replaces the local operation state. The
// attempt budget is MaxChecksUntilTimeout; polling cadence is the Service's
// fixed sleep interval.
func (d *Deployment) waitUntilDone(ctx context.Context, svc Service, op *dm.Operation, deploying bool) error {
	ctx, span := tracer.Start(ctx, "deployment.waitUntilDone")
	defer span.End()

	checks := MaxChecksUntilTimeout
	for {
		done, err := StatusDone.IsStatusOf(op)
		if err != nil {
			return Errorf(ExitInternalError, "operation %s: %s", op.Name, err)
		}
		if done {
			break
		}

		if deploying {
			d.log("Waiting for the deployment to complete...")
		} else {
			d.log("Waiting for the deployment to be deleted...")
		}
		svc.Sleep(ctx)

		if checks <= 0 {
			if deploying {
				return Errorf(ExitTimeout, "timed out waiting for the deployment to complete")
			}
			return Errorf(ExitTimeout, "timed out waiting for the deployment to be deleted")
		}

		next, err := svc.GetOperation(ctx, op.Name)
		if err != nil {
			// An operation that was just accepted cannot legitimately
			// disappear; unlike delete submission, not-found here is fatal.
			if errors.Is(err, ErrNotFound) {
				return ErrorWrap(ExitNotFound, fmt.Errorf("operation %s disappeared while waiting: %w", op.Name, err))
			}
			if deploying {
				return Errorf(ExitUnavailable, "fetch operation while deploying: %s", err)
			}
			return Errorf(ExitUnavailable, "fetch operation while deleting: %s", err)
		}
		op = next
		checks--
	}

	return checkOperationErrors(op)
}

// checkOperationErrors turns a terminal operation's error payload into a
// single error whose message joins all reported entries, in order.
func checkOperationErrors(op *dm.Operation) error {
	if op.Error == nil || len(op.Error.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(op.Error.Errors))
	for _, e := range op.Error.Errors {
		if e == nil {
			continue
		}
		if e.Code != "" {
			messages = append(messages, fmt.Sprintf("%s: %s", e.Code, e.Message))
		} else {
			messages = append(messages, e.Message)
		}
	}

	return Errorf(ExitDeploymentFailure, "%s", strings.Join(messages, "\n"))
}

func (d *Deployment) setSink(sink *log.Entry) {
	if sink == nil {
		return
	}
	d.logger = sink.WithField("correlation_id", uuid.NewString())
}

func (d *Deployment) clearSink() {
	d.logger = nil
}

func (d *Deployment) log(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Infof(format, args...)
	}
}

func (d *Deployment) logError(format string, args ...interface{}) {
	if d.logger != nil {
		d.logger.Errorf(format, args...)
	}
}
