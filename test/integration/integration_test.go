package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// TestFeatures runs the cucumber features against a postgres-backed cmsctl.
// CMS_FEATURE_TAGS narrows the run (e.g. "@moderation") and CMS_FEATURE_FORMAT
// overrides the pretty formatter.
func TestFeatures(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" || testing.Short() {
		t.Skip("set INTEGRATION_TEST=1 to run the CMS feature suite against postgres")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tc, err := NewTestContext(ctx)
	require.NoError(t, err, "starting postgres and the CMS server")
	defer tc.Close(ctx)

	opts := &godog.Options{
		Format:   "pretty",
		Paths:    []string{"features"},
		Tags:     os.Getenv("CMS_FEATURE_TAGS"),
		Strict:   true,
		TestingT: t,
	}
	if format := os.Getenv("CMS_FEATURE_FORMAT"); format != "" {
		opts.Format = format
	}

	suite := godog.TestSuite{
		Name: "cms",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			steps := NewStepsContext(tc)
			sc.Before(steps.reset)
			steps.RegisterSteps(sc)
		},
		Options: opts,
	}

	if status := suite.Run(); status != 0 {
		t.Fatalf("feature suite exited with status %d", status)
	}
}
