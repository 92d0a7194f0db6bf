package dryrun

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests spawn a fresh process of the current test binary with helper
// flags defined in TestMain (see testmain_test.go), so the sync.Once guard
// in dryrun.go reads the environment afresh.

func runHelper(t *testing.T, extraEnv []string, args ...string) string {
	t.Helper()

	//#nosec G204 -- os.Args[0] is the test binary itself, not user input.
	cmd := exec.Command(os.Args[0], args...)
	cmd.Env = append(os.Environ(), extraEnv...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "subprocess failed: %s", out)

	return strings.TrimSpace(string(out))
}

func TestIsDryRunFromEnv(t *testing.T) {
	assert.Equal(t, "true", runHelper(t, []string{RequestedEnv + "=1"}, "-printIsDryRun"))
	assert.Equal(t, "true", runHelper(t, []string{RequestedEnv + "=yes"}, "-printIsDryRun"))
	assert.Equal(t, "false", runHelper(t, []string{RequestedEnv + "=0"}, "-printIsDryRun"))
	assert.Equal(t, "false", runHelper(t, []string{RequestedEnv + "="}, "-printIsDryRun"))
}

func TestIsDryRunFromSetRequested(t *testing.T) {
	assert.Equal(t, "true", runHelper(t, []string{RequestedEnv + "="}, "-requestViaFlag", "-printIsDryRun"))
}

func TestWrapEchoesInDryRun(t *testing.T) {
	got := runHelper(t, []string{RequestedEnv + "=1"}, "-printWrapped")
	assert.Equal(t, "DRYRUN: npm run build", got)
}
