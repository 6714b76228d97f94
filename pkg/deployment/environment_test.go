package deployment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GoogleCloudPlatform/deploy-manager/pkg/deployment"
)

func TestResolve(t *testing.T) {
	env := deployment.Environment{
		"BUILD_NUMBER": "7",
		"JOB_NAME":     "nightly",
	}

	for input, expected := range map[string]string{
		"":                             "",
		"plain":                        "plain",
		"test-deployment-$BUILD_NUMBER": "test-deployment-7",
		"${JOB_NAME}-$BUILD_NUMBER":    "nightly-7",
		"$JOB_NAME$BUILD_NUMBER":       "nightly7",
		"$UNKNOWN":                     "$UNKNOWN",
		"${UNKNOWN}":                   "${UNKNOWN}",
		"$$BUILD_NUMBER":               "$BUILD_NUMBER",
		"price: 5$":                    "price: 5$",
		"$1":                           "$1",
		"${UNTERMINATED":               "${UNTERMINATED",
	} {
		assert.Equal(t, expected, env.Resolve(input), "input: %q", input)
	}
}

func TestOSEnvironment(t *testing.T) {
	t.Setenv("DEPLOY_MANAGER_TEST_VARIABLE", "some value")

	env := deployment.OSEnvironment()
	assert.Equal(t, "some value", env["DEPLOY_MANAGER_TEST_VARIABLE"])
}
