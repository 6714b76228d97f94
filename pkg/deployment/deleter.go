package deployment

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Deleter is a deployment kind that only ever tears down, regardless of how
// the target was inserted. Its name skips character set validation so it can
// address deployments created by other tooling.
type Deleter struct {
	*Deployment
}

func NewDeleter(credentialsFile, name string, module Module) *Deleter {
	return &Deleter{
		Deployment: New(credentialsFile, name, module),
	}
}

// InsertFromWorkspace wires insertion to deletion, so single-action callers
// can run any kind through the same entry point.
func (d *Deleter) InsertFromWorkspace(ctx context.Context, workspace string, env Environment, sink *log.Entry) error {
	return d.Delete(ctx, env, sink)
}
