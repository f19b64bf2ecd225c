package configuration_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/iotaledger/oneshot/configuration"
)

type testParameters struct {
	ConsumeImmediately bool          `default:"false" usage:"consume events before their handler runs"`
	Timeout            time.Duration `default:"5s" usage:"timeout"`
	PoolSize           int           `name:"workers" shorthand:"w" default:"4" usage:"pool size"`
	Tags               []string      `default:"a,b" usage:"tags"`
	Database           struct {
		Engine string `default:"mapdb" usage:"the database engine"`
		Path   string `default:"savedstate" usage:"the database path"`
	}
}

func writeFile(t *testing.T, name string, content string) string {
	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0600))

	return filePath
}

func bind(t *testing.T, args ...string) (*configuration.Configuration, *flag.FlagSet, *testParameters) {
	parameters := new(testParameters)
	flagSet := configuration.NewUnsortedFlagSet("test", flag.ContinueOnError)

	config := configuration.New()
	require.NoError(t, config.BindParameters(flagSet, "app", parameters))
	require.NoError(t, flagSet.Parse(args))

	return config, flagSet, parameters
}

func TestBindParameters_Defaults(t *testing.T) {
	config, flagSet, parameters := bind(t)

	require.False(t, parameters.ConsumeImmediately)
	require.Equal(t, 5*time.Second, parameters.Timeout)
	require.Equal(t, 4, parameters.PoolSize)
	require.Equal(t, []string{"a", "b"}, parameters.Tags)
	require.Equal(t, "mapdb", parameters.Database.Engine)

	require.NotNil(t, flagSet.Lookup("app.workers"))
	require.NotNil(t, flagSet.Lookup("app.database.engine"))

	require.NoError(t, config.LoadFlagSet(flagSet))
	require.Equal(t, 4, config.Int("app.workers"))
	require.Equal(t, "savedstate", config.String("app.database.path"))
}

func TestBindParameters_InvalidDefault(t *testing.T) {
	parameters := &struct {
		Count int `default:"many"`
	}{}

	require.Error(t, configuration.New().BindParameters(flag.NewFlagSet("test", flag.ContinueOnError), "app", parameters))
}

func TestLoadFile_Precedence(t *testing.T) {
	config, flagSet, parameters := bind(t, "--app.consumeImmediately=true")

	require.NoError(t, config.LoadFile(writeFile(t, "config.yaml", "app:\n  Workers: 8\n  database:\n    engine: badger\n")))
	require.NoError(t, config.LoadFlagSet(flagSet))

	t.Setenv("TEST_APP_DATABASE_PATH", "/tmp/state")
	t.Setenv("TEST_APP_UNKNOWN", "ignored")
	require.NoError(t, config.LoadEnvironmentVars("TEST"))

	config.UpdateBoundParameters()

	require.True(t, parameters.ConsumeImmediately)
	require.Equal(t, 8, parameters.PoolSize)
	require.Equal(t, "badger", parameters.Database.Engine)
	require.Equal(t, "/tmp/state", parameters.Database.Path)
	require.False(t, config.Exists("app.unknown"))
}

func TestLoadFile_Formats(t *testing.T) {
	files := map[string]string{
		"config.json": `{"App": {"Timeout": "1m", "database": {"engine": "badger"}}}`,
		"config.yml":  "app:\n  timeout: 1m\n  database:\n    engine: badger\n",
		"config.toml": "[App]\nTimeout = \"1m\"\n[App.Database]\nEngine = \"badger\"\n",
	}

	for name, content := range files {
		config := configuration.New()
		require.NoError(t, config.LoadFile(writeFile(t, name, content)), name)

		require.Equal(t, time.Minute, config.Duration("app.timeout"), name)
		require.Equal(t, "badger", config.String("app.database.engine"), name)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	config := configuration.New()

	require.ErrorIs(t, config.LoadFile(filepath.Join(t.TempDir(), "missing.json")), configuration.ErrConfigDoesNotExist)
	require.ErrorIs(t, config.LoadFile(writeFile(t, "config.ini", "a=b")), configuration.ErrUnknownConfigFormat)
	require.Error(t, config.LoadFile(writeFile(t, "config.json", "{")))
}

func TestStoreFile(t *testing.T) {
	config, flagSet, _ := bind(t)
	require.NoError(t, config.LoadFlagSet(flagSet))

	for _, name := range []string{"stored.json", "stored.yaml", "stored.toml"} {
		filePath := filepath.Join(t.TempDir(), name)
		require.NoError(t, config.StoreFile(filePath, "app.database.path"))

		restored := configuration.New()
		require.NoError(t, restored.LoadFile(filePath), name)
		require.Equal(t, "mapdb", restored.String("app.database.engine"), name)
		require.False(t, restored.Exists("app.database.path"), name)
	}
}

func TestSet(t *testing.T) {
	config := configuration.New()

	require.NoError(t, config.Set("Logger.Level", "debug"))
	require.Equal(t, "debug", config.String("logger.level"))
}
