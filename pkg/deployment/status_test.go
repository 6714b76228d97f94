package deployment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	dm "google.golang.org/api/deploymentmanager/v2"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

func TestParseOperationStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "RUNNING", "DONE"} {
		status, err := deployment.ParseOperationStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, deployment.OperationStatus(valid), status)
	}

	_, err := deployment.ParseOperationStatus("CANCELED")
	assert.ErrorContains(t, err, "CANCELED")

	_, err = deployment.ParseOperationStatus("")
	assert.Error(t, err)
}

func TestIsStatusOf(t *testing.T) {
	done, err := deployment.StatusDone.IsStatusOf(&dm.Operation{Status: "DONE"})
	assert.NoError(t, err)
	assert.True(t, done)

	done, err = deployment.StatusDone.IsStatusOf(&dm.Operation{Status: "RUNNING"})
	assert.NoError(t, err)
	assert.False(t, done)

	_, err = deployment.StatusDone.IsStatusOf(&dm.Operation{Status: "HALF_DONE"})
	assert.Error(t, err)
}
