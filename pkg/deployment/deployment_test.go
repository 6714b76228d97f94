package deployment_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	dm "google.golang.org/api/deploymentmanager/v2"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

var env = deployment.Environment{
	"BUILD_NUMBER": "7",
}

func operation(name, status string) *dm.Operation {
	return &dm.Operation{
		Name:   name,
		Status: status,
	}
}

func notFound() error {
	return fmt.Errorf("%w: no such deployment", deployment.ErrNotFound)
}

func TestInsertSuccess(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "cred.json").Return(svc, nil).Once()
	svc.On("Project").Return("my-project")
	svc.On("InsertDeployment", mock.Anything, mock.MatchedBy(func(spec *dm.Deployment) bool {
		return spec.Name == "test-deployment-7" && spec.Target.Config.Content == "resources: []"
	})).Return(operation("op-1", "PENDING"), nil).Once()
	svc.On("Sleep", mock.Anything).Return()
	svc.On("GetOperation", mock.Anything, "op-1").Return(operation("op-1", "RUNNING"), nil).Once()
	svc.On("GetOperation", mock.Anything, "op-1").Return(operation("op-1", "DONE"), nil).Once()

	d := deployment.New("cred.json", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	assert.NoError(t, err)
}

func TestInsertSubmitFailureRollsBack(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("InsertDeployment", mock.Anything, mock.Anything).
		Return(nil, errors.New("backend unavailable")).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	insertError := &deployment.InsertError{}
	assert.ErrorAs(t, err, &insertError)
	assert.NoError(t, insertError.RollbackErr)
	assert.ErrorContains(t, err, "backend unavailable")
	assert.Equal(t, deployment.ExitUnavailable, deployment.ErrorExitCode(err))
	svc.AssertNumberOfCalls(t, "DeleteDeployment", 1)
}

func TestInsertOperationErrorsRollBack(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	op := operation("op-1", "DONE")
	op.Error = &dm.OperationError{
		Errors: []*dm.OperationErrorErrors{
			{Code: "RESOURCE_ERROR", Message: "quota exceeded"},
			{Message: "second failure"},
		},
	}

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("Project").Return("my-project")
	svc.On("InsertDeployment", mock.Anything, mock.Anything).Return(op, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(operation("op-2", "DONE"), nil).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	insertError := &deployment.InsertError{}
	assert.ErrorAs(t, err, &insertError)
	assert.NoError(t, insertError.RollbackErr)
	assert.ErrorContains(t, err, "RESOURCE_ERROR: quota exceeded\nsecond failure")
	assert.Equal(t, deployment.ExitDeploymentFailure, deployment.ErrorExitCode(err))
}

func TestInsertRollbackFailureReported(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("InsertDeployment", mock.Anything, mock.Anything).
		Return(nil, errors.New("backend unavailable")).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, errors.New("delete also broken")).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	insertError := &deployment.InsertError{}
	assert.ErrorAs(t, err, &insertError)
	assert.Error(t, insertError.RollbackErr)
	assert.ErrorContains(t, err, "backend unavailable")
	assert.ErrorContains(t, err, "rollback also failed")
	assert.ErrorContains(t, err, "delete also broken")

	// exit status reflects the original failure, not the rollback
	assert.Equal(t, deployment.ExitUnavailable, deployment.ErrorExitCode(err))
}

func TestInsertServiceUnavailableNoRollback(t *testing.T) {
	module := deployment.NewMockModule(t)

	module.On("NewService", mock.Anything, "").
		Return(nil, errors.New("credentials rejected")).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	assert.Error(t, err)
	assert.Equal(t, deployment.ExitUnavailable, deployment.ErrorExitCode(err))
	insertError := &deployment.InsertError{}
	assert.False(t, errors.As(err, &insertError))
}

func TestInsertUnknownOperationStatus(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("Project").Return("my-project")
	svc.On("InsertDeployment", mock.Anything, mock.Anything).
		Return(operation("op-1", "HALF_DONE"), nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	assert.ErrorContains(t, err, "HALF_DONE")
	assert.Equal(t, deployment.ExitInternalError, deployment.ErrorExitCode(err))
}

func TestInsertNilOperation(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("InsertDeployment", mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Insert(context.Background(), "resources: []", nil, env, nil)

	assert.ErrorContains(t, err, "no operation")
	assert.Equal(t, deployment.ExitInternalError, deployment.ErrorExitCode(err))
}

func TestInsertBlocksWhileDeleteInFlight(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	deleting := make(chan struct{})
	release := make(chan struct{})

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(operation("op-del", "PENDING"), nil).Once()
	svc.On("Sleep", mock.Anything).Run(func(mock.Arguments) {
		close(deleting)
		<-release
	}).Return().Once()
	svc.On("GetOperation", mock.Anything, "op-del").
		Return(operation("op-del", "DONE"), nil).Once()
	svc.On("Project").Return("my-project").Once()
	svc.On("InsertDeployment", mock.Anything, mock.Anything).
		Return(operation("op-ins", "DONE"), nil).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)

	deleteDone := make(chan error, 1)
	go func() {
		deleteDone <- d.Delete(context.Background(), env, nil)
	}()
	<-deleting

	insertDone := make(chan error, 1)
	go func() {
		insertDone <- d.Insert(context.Background(), "resources: []", nil, env, nil)
	}()

	// The delete is parked mid-poll; the insert must not have submitted.
	time.Sleep(50 * time.Millisecond)
	svc.AssertNotCalled(t, "InsertDeployment", mock.Anything, mock.Anything)

	close(release)
	assert.NoError(t, <-deleteDone)
	assert.NoError(t, <-insertDone)
}

func TestDeleteSuccess(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(operation("op-del", "PENDING"), nil).Once()
	svc.On("Sleep", mock.Anything).Return()
	svc.On("GetOperation", mock.Anything, "op-del").Return(operation("op-del", "DONE"), nil).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Delete(context.Background(), env, nil)

	assert.NoError(t, err)
}

func TestDeleteNotFoundOnSubmitIsSuccess(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Delete(context.Background(), env, nil)

	assert.NoError(t, err)
	svc.AssertNotCalled(t, "GetOperation", mock.Anything, mock.Anything)
}

func TestDeleteNilOperation(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(nil, nil).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Delete(context.Background(), env, nil)

	assert.ErrorContains(t, err, "no operation")
	assert.Equal(t, deployment.ExitInternalError, deployment.ErrorExitCode(err))
}

func TestDeleteTimesOutAfterMaxChecks(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(operation("op-del", "PENDING"), nil).Once()
	svc.On("Sleep", mock.Anything).Return().Times(deployment.MaxChecksUntilTimeout + 1)
	svc.On("GetOperation", mock.Anything, "op-del").
		Return(operation("op-del", "RUNNING"), nil).Times(deployment.MaxChecksUntilTimeout)

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Delete(context.Background(), env, nil)

	assert.ErrorContains(t, err, "timed out")
	assert.Equal(t, deployment.ExitTimeout, deployment.ErrorExitCode(err))
	svc.AssertNumberOfCalls(t, "GetOperation", deployment.MaxChecksUntilTimeout)
}

func TestDeleteOperationDisappears(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Once()
	svc.On("DeleteDeployment", mock.Anything, "test-deployment-7").
		Return(operation("op-del", "PENDING"), nil).Once()
	svc.On("Sleep", mock.Anything).Return()
	svc.On("GetOperation", mock.Anything, "op-del").Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)
	err := d.Delete(context.Background(), env, nil)

	assert.ErrorIs(t, err, deployment.ErrNotFound)
	assert.Equal(t, deployment.ExitNotFound, deployment.ErrorExitCode(err))
}

func TestExists(t *testing.T) {
	module := deployment.NewMockModule(t)
	svc := deployment.NewMockService(t)

	module.On("NewService", mock.Anything, "").Return(svc, nil).Twice()
	svc.On("GetDeployment", mock.Anything, "test-deployment-7").
		Return(&dm.Deployment{Name: "test-deployment-7"}, nil).Once()
	svc.On("GetDeployment", mock.Anything, "test-deployment-7").
		Return(nil, notFound()).Once()

	d := deployment.New("", "test-deployment-$BUILD_NUMBER", module)

	exists, err := d.Exists(context.Background(), env)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.Exists(context.Background(), env)
	assert.NoError(t, err)
	assert.False(t, exists)
}
