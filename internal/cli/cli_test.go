package cli

import (
	"bytes"
	"testing"

	"github.com/MyelinBots/connectmap-go/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *app {
	return &app{loadConfig: func() config.Config {
		var cfg config.Config
		cfg.AppConfig = config.AppConfig{APPName: "connectmap", Version: "1.2.3", LogLevel: "error"}
		return cfg
	}}
}

func TestVersion(t *testing.T) {
	root := testApp().root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "connectmap 1.2.3\n", out.String())
}

func TestCommandTree(t *testing.T) {
	root := NewRootCommand()
	for _, path := range [][]string{{"serve"}, {"migrate", "up"}, {"migrate", "down"}, {"seed"}, {"compute"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	down, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "1", down.Flags().Lookup("steps").DefValue)
}

func TestBadLogLevel(t *testing.T) {
	a := testApp()
	a.loadConfig = func() config.Config {
		var cfg config.Config
		cfg.AppConfig.LogLevel = "loud"
		return cfg
	}
	root := a.root()
	root.SetArgs([]string{"version"})
	assert.Error(t, root.Execute())
}
