package deployment

import (
	"fmt"

	dm "google.golang.org/api/deploymentmanager/v2"
)

// OperationStatus is the status of an asynchronous Deployment Manager
// operation as reported on the wire.
type OperationStatus string

const (
	StatusPending OperationStatus = "PENDING"
	StatusRunning OperationStatus = "RUNNING"
	StatusDone    OperationStatus = "DONE"
)

// ParseOperationStatus maps a wire status string to an OperationStatus.
// Anything else is rejected, so an operation reporting a status we do not
// recognize can never keep us polling forever.
func ParseOperationStatus(status string) (OperationStatus, error) {
	switch s := OperationStatus(status); s {
	case StatusPending, StatusRunning, StatusDone:
		return s, nil
	}
	return "", fmt.Errorf("unrecognized operation status %q", status)
}

// IsStatusOf reports whether the operation currently has this status.
func (s OperationStatus) IsStatusOf(op *dm.Operation) (bool, error) {
	parsed, err := ParseOperationStatus(op.Status)
	if err != nil {
		return false, err
	}
	return parsed == s, nil
}
