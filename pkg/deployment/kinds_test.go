package deployment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, []string{deployment.KindDeleter, deployment.KindTemplated}, deployment.Kinds(deployment.ConsumerSingleAction))
	assert.Equal(t, []string{deployment.KindTemplated}, deployment.Kinds(deployment.ConsumerPaired))
}

func TestNewVariant(t *testing.T) {
	module := deployment.NewMockModule(t)

	variant, err := deployment.NewVariant(deployment.KindTemplated, deployment.ConsumerPaired, "", "test-deployment", module, "config.yaml", "")
	assert.NoError(t, err)
	assert.IsType(t, &deployment.Templated{}, variant)

	variant, err = deployment.NewVariant(deployment.KindDeleter, deployment.ConsumerSingleAction, "", "test-deployment", module, "", "")
	assert.NoError(t, err)
	assert.IsType(t, &deployment.Deleter{}, variant)
}

func TestNewVariantDeleterNotApplicableWhenPaired(t *testing.T) {
	module := deployment.NewMockModule(t)

	_, err := deployment.NewVariant(deployment.KindDeleter, deployment.ConsumerPaired, "", "test-deployment", module, "", "")
	assert.ErrorContains(t, err, "cannot be used here")
}

func TestNewVariantUnknownKind(t *testing.T) {
	module := deployment.NewMockModule(t)

	_, err := deployment.NewVariant("imaginary", deployment.ConsumerSingleAction, "", "test-deployment", module, "", "")
	assert.ErrorContains(t, err, "unknown deployment kind")
}
