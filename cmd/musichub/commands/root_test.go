// cmd/musichub/commands/root_test.go
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "seed"} {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-06-01")
	assert.Equal(t, "1.2.3 (commit: abc123, built: 2024-06-01)", rootCmd.Version)
}

func TestSeedFlagsDefaults(t *testing.T) {
	flag := seedCmd.Flags().Lookup("admin-username")
	require.NotNil(t, flag)
	assert.Equal(t, "admin", flag.DefValue)

	assert.NotNil(t, serveCmd.Flags().Lookup("skip-migrations"))
}
