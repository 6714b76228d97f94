// Package cloudmanager provides the concrete Deployment Manager v2 session
// used by the lifecycle controller. Credentials come from a service account
// key file, or from application default credentials when no file is given.
package cloudmanager

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	dm "google.golang.org/api/deploymentmanager/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

const (
	// DefaultRootURL and DefaultServicePath form the default API endpoint.
	// Both can be overridden to target a test or staging instance of the
	// Deployment Manager API.
	DefaultRootURL     = "https://www.googleapis.com"
	DefaultServicePath = "deploymentmanager/v2/projects/"

	// pollInterval is the fixed delay between operation status fetches. The
	// lifecycle timeout contract depends on it staying fixed.
	pollInterval = 5 * time.Second
)

// Module opens authenticated Deployment Manager sessions. It implements
// deployment.Module.
type Module struct {
	// Project is the project id to operate in. When empty, it is detected
	// from the credentials.
	Project string
	// RootURL overrides the API root URL when non-empty.
	RootURL string
	// ServicePath overrides the API service path when non-empty.
	ServicePath string
}

// NewService opens a fresh session against the Deployment Manager API with
// a fresh access token.
func (m *Module) NewService(ctx context.Context, credentialsFile string) (deployment.Service, error) {
	project := m.Project
	if project == "" {
		detected, err := projectFromCredentials(ctx, credentialsFile)
		if err != nil {
			return nil, err
		}
		project = detected
	}

	opts := []option.ClientOption{
		option.WithScopes(dm.NdevCloudmanScope),
		option.WithEndpoint(m.endpoint()),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := dm.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create deployment manager client: %w", err)
	}

	return &client{svc: svc, project: project}, nil
}

func (m *Module) endpoint() string {
	root := m.RootURL
	if root == "" {
		root = DefaultRootURL
	}
	servicePath := m.ServicePath
	if servicePath == "" {
		servicePath = DefaultServicePath
	}
	return strings.TrimSuffix(root, "/") + "/" + servicePath
}

func projectFromCredentials(ctx context.Context, credentialsFile string) (string, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, dm.NdevCloudmanScope)
		if err != nil {
			return "", fmt.Errorf("resolve default credentials: %w", err)
		}
		if creds.ProjectID == "" {
			return "", fmt.Errorf("no project configured, and default credentials carry none")
		}
		return creds.ProjectID, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return "", fmt.Errorf("read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, dm.NdevCloudmanScope)
	if err != nil {
		return "", fmt.Errorf("parse credentials file %s: %w", credentialsFile, err)
	}
	if creds.ProjectID == "" {
		return "", fmt.Errorf("no project configured, and credentials file %s carries none", credentialsFile)
	}
	return creds.ProjectID, nil
}

type client struct {
	svc     *dm.Service
	project string
}

func (c *client) Project() string {
	return c.project
}

func (c *client) InsertDeployment(ctx context.Context, dep *dm.Deployment) (*dm.Operation, error) {
	op, err := c.svc.Deployments.Insert(c.project, dep).Context(ctx).Do()
	return op, wrapNotFound(err)
}

func (c *client) DeleteDeployment(ctx context.Context, name string) (*dm.Operation, error) {
	op, err := c.svc.Deployments.Delete(c.project, name).Context(ctx).Do()
	return op, wrapNotFound(err)
}

func (c *client) GetDeployment(ctx context.Context, name string) (*dm.Deployment, error) {
	dep, err := c.svc.Deployments.Get(c.project, name).Context(ctx).Do()
	return dep, wrapNotFound(err)
}

func (c *client) GetOperation(ctx context.Context, name string) (*dm.Operation, error) {
	op, err := c.svc.Operations.Get(c.project, name).Context(ctx).Do()
	return op, wrapNotFound(err)
}

func (c *client) Sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(pollInterval):
	}
}

// wrapNotFound folds an HTTP 404 into the controller's not-found condition.
// All other errors pass through untouched for the controller to classify.
func wrapNotFound(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", deployment.ErrNotFound, gerr.Message)
	}
	return err
}
