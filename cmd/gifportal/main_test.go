package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gifportal/internal/config"
)

func TestFlagsApply_OverridesOnlyGivenValues(t *testing.T) {
	cfg := config.Default()
	flags{cluster: "localnet", walletPath: "/tmp/me.json"}.apply(cfg)

	assert.Equal(t, "localnet", cfg.Cluster)
	assert.Equal(t, "/tmp/me.json", cfg.Wallet.KeypairPath)
	assert.Equal(t, "processed", cfg.Commitment)
	assert.Equal(t, "idl.json", cfg.IDLPath)
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"config", "cluster", "commitment", "idl", "base-account", "wallet", "log-file", "log-level"} {
		require.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRun_InvalidFlagFailsBeforeUI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	err := run(t.Context(), flags{commitment: "eventually"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commitment")
}

func TestRun_FlagOverridesBadEnvValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GIFPORTAL_COMMITMENT", "eventually")
	idlPath := filepath.Join(t.TempDir(), "missing-idl.json")

	err := run(t.Context(), flags{commitment: "confirmed", idlPath: idlPath, logFile: filepath.Join(t.TempDir(), "gifportal.log")})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "commitment", "flag value replaced the env value")
	assert.Contains(t, err.Error(), "missing-idl.json")
}
