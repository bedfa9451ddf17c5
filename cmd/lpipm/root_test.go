package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader("\n"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRoot_CertificateRun(t *testing.T) {
	out, logs, err := execute(t, "--m", "4", "--n", "6", "--seed", "5", "--backend", "certificate")
	require.NoError(t, err)
	require.Contains(t, out, "instance 4 x 6, seed 5, 1 worker(s)")
	require.Contains(t, out, "Mehrotra")
	require.Contains(t, out, "IPF")
	require.Contains(t, logs, "solved")
}

func TestRoot_SimplexSingleVariant(t *testing.T) {
	out, _, err := execute(t, "--m", "3", "--n", "7", "--ipf=false", "--workers", "2", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "Mehrotra")
	require.NotContains(t, out, "IPF")
}

func TestRoot_EnvOverrides(t *testing.T) {
	t.Setenv("LPIPM_N", "8")
	t.Setenv("LPIPM_LOG_JSON", "true")
	out, logs, err := execute(t, "--m", "3", "--backend", "certificate")
	require.NoError(t, err)
	require.Contains(t, out, "instance 3 x 8")
	require.Contains(t, logs, `"@message":"solved"`)
}

func TestRoot_Errors(t *testing.T) {
	_, _, err := execute(t, "--m", "3", "--n", "4", "--backend", "barrier")
	require.ErrorContains(t, err, "unknown backend")

	_, _, err = execute(t, "--m", "3", "--n", "4", "--log-level", "loud")
	require.ErrorContains(t, err, "unknown log level")

	_, _, err = execute(t, "--m", "9", "--n", "4")
	require.ErrorContains(t, err, "invalid config")

	_, _, err = execute(t, "extra")
	require.Error(t, err)
}

// TestRoot_AutoBackend falls back to the certificate backend above the
// dense simplex limit and fails fast when simplex is forced.
func TestRoot_AutoBackend(t *testing.T) {
	out, logs, err := execute(t, "--m", "300", "--n", "1100", "--ipf=false")
	require.NoError(t, err)
	require.Contains(t, logs, "using the certificate backend")
	require.Contains(t, out, "Mehrotra")

	out, _, err = execute(t, "--m", "300", "--n", "1100", "--ipf=false", "--backend", "simplex")
	require.ErrorContains(t, err, "too large for the dense simplex")
	require.Contains(t, out, "failed:")
}
