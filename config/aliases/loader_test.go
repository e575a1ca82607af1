package aliases

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site_aliases.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
["staging"]
site_aliases = ["beta.aetherdrone.io"]

[""]
site_aliases = ["www.aetherdrone.io", "aether-drone.com"]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, []string{"beta.aetherdrone.io"}, (*cfg)["staging"].SiteAliases)
	require.Len(t, (*cfg)[""].SiteAliases, 2)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, `site_aliases = [`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}
