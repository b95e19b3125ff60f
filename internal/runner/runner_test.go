package runner

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietRunner(timeout time.Duration) *Exec {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewExec(timeout, log)
}

func TestExec_Success(t *testing.T) {
	out, err := quietRunner(0).Run(context.Background(), "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestExec_ArgumentsAreNotShellExpanded(t *testing.T) {
	out, err := quietRunner(0).Run(context.Background(), "printf", "%s", "$(whoami); rm -rf /")
	require.NoError(t, err)
	assert.Equal(t, "$(whoami); rm -rf /", string(out))
}

func TestExec_FailureWithOutputIsNotAnError(t *testing.T) {
	out, err := quietRunner(0).Run(context.Background(), "sh", "-c", "echo partial; echo warn >&2; exit 3")
	require.NoError(t, err)
	assert.Equal(t, "partial\n", string(out))
}

func TestExec_FailureWithoutOutputSurfacesStderr(t *testing.T) {
	_, err := quietRunner(0).Run(context.Background(), "sh", "-c", "echo 'Invalid device: ABC' >&2; exit 2")
	require.Error(t, err)
	assert.Equal(t, "Invalid device: ABC", err.Error())

	var perr *ProcessError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "echo 'Invalid device: ABC' >&2; exit 2"}, perr.Argv)
}

func TestExec_FailureWithoutAnyOutput(t *testing.T) {
	_, err := quietRunner(0).Run(context.Background(), "sh", "-c", "exit 4")
	require.Error(t, err)
	assert.Equal(t, "sh exited with status 4", err.Error())
}

func TestExec_MissingExecutable(t *testing.T) {
	_, err := quietRunner(0).Run(context.Background(), "definitely-not-a-real-tool-xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-tool-xyz")
}

func TestExec_Timeout(t *testing.T) {
	_, err := quietRunner(50*time.Millisecond).Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
