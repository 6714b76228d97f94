package deployment

import (
	"context"
	"errors"

	dm "google.golang.org/api/deploymentmanager/v2"
)

// ErrNotFound signals that the remote resource does not exist. Service
// implementations return it (possibly wrapped) instead of a transport error
// so that callers can special-case deletion of something that is already
// gone. It is never folded into the umbrella Error type.
var ErrNotFound = errors.New("deployment manager resource not found")

// Service is a single authenticated session against the Deployment Manager
// API, bound to one project. Every method that talks to the service may
// return a transport error; DeleteDeployment, GetDeployment and GetOperation
// may additionally return ErrNotFound.
type Service interface {
	// InsertDeployment submits a new deployment and returns the asynchronous
	// operation tracking its creation.
	InsertDeployment(ctx context.Context, deployment *dm.Deployment) (*dm.Operation, error)

	// DeleteDeployment submits deletion of the named deployment and returns
	// the asynchronous operation tracking the teardown.
	DeleteDeployment(ctx context.Context, name string) (*dm.Operation, error)

	// GetDeployment fetches the current state of the named deployment.
	GetDeployment(ctx context.Context, name string) (*dm.Deployment, error)

	// GetOperation fetches the current state of an operation by its handle.
	GetOperation(ctx context.Context, name string) (*dm.Operation, error)

	// Project returns the project id this session operates in.
	Project() string

	// Sleep blocks for the fixed interval between operation status fetches,
	// or until the context is cancelled.
	Sleep(ctx context.Context)
}

// Module opens Service sessions. The lifecycle controller acquires a fresh
// session for every insert or delete call so each call runs with a fresh
// access token.
type Module interface {
	NewService(ctx context.Context, credentialsFile string) (Service, error)
}
