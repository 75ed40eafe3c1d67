package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corpsite/pkg/config"
)

type TestConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type TestConfigDefault struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
}

type TestConfigSingleton struct {
	TestString string `env:"TEST_STRING_SINGLETON" envDefault:"default_value"`
}

type TestConfigFresh struct {
	Value string `env:"TEST_FRESH_VALUE"`
	Port  int    `env:"TEST_FRESH_PORT" envDefault:"587"`
}

type RequiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

type TestConfigEnvFile struct {
	FromFile string `env:"TEST_FROM_ENV_FILE"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")
	config.ResetCache()

	var cfg TestConfigSuccess
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "test_value", cfg.TestString)
	assert.Equal(t, 100, cfg.TestInt)
	assert.False(t, cfg.TestBool)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	config.ResetCache()

	var cfg TestConfigDefault
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default_value", cfg.TestString)
	assert.Equal(t, 42, cfg.TestInt)
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "first_value")
	config.ResetCache()

	var first TestConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_STRING_SINGLETON", "second_value")

	var second TestConfigSingleton
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.TestString, "Load must serve the cached value")

	config.ResetCache()
	var third TestConfigSingleton
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second_value", third.TestString, "ResetCache must force a new parse")
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	config.ResetCache()

	var cfg RequiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *TestConfigSuccess
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestRead_ReflectsCurrentEnvironment(t *testing.T) {
	t.Setenv("TEST_FRESH_VALUE", "one")

	cfg, err := config.Read[TestConfigFresh]()
	require.NoError(t, err)
	assert.Equal(t, "one", cfg.Value)
	assert.Equal(t, 587, cfg.Port)

	t.Setenv("TEST_FRESH_VALUE", "two")
	t.Setenv("TEST_FRESH_PORT", "2525")

	cfg, err = config.Read[TestConfigFresh]()
	require.NoError(t, err)
	assert.Equal(t, "two", cfg.Value)
	assert.Equal(t, 2525, cfg.Port)
}

func TestRead_InvalidValue(t *testing.T) {
	t.Setenv("TEST_FRESH_PORT", "not-a-number")

	_, err := config.Read[TestConfigFresh]()
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_FROM_ENV_FILE")
	t.Cleanup(func() { os.Unsetenv("TEST_FROM_ENV_FILE") })

	path := filepath.Join(t.TempDir(), ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FROM_ENV_FILE=from_file\n"), 0o600))

	require.NoError(t, config.LoadEnv(path))

	cfg, err := config.Read[TestConfigEnvFile]()
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.FromFile)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
