package config_test

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/config"
)

type TestConfigDefault struct {
	TestString string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
}

type TestConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type TestConfigSingleton struct {
	TestString string `env:"TEST_STRING_SINGLETON" envDefault:"default_value"`
}

type TestConfigDifferent1 struct {
	Value string `env:"VALUE_TYPE1" envDefault:"default1"`
}

type TestConfigDifferent2 struct {
	Value string `env:"VALUE_TYPE2" envDefault:"default2"`
}

type RequiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

type ResolverEnvConfig struct {
	DefaultDomain string        `env:"TENANT_DEFAULT_DOMAIN"`
	LookupTimeout time.Duration `env:"TENANT_LOOKUP_TIMEOUT" envDefault:"2s"`
	SkipPaths     []string      `env:"TENANT_SKIP_PATHS" envSeparator:","`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg TestConfigSuccess
	err := config.Load(&cfg)

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	assert.Equal(t, "test_value", cfg.TestString, "TestString should match environment variable")
	assert.Equal(t, 100, cfg.TestInt, "TestInt should match environment variable")
	assert.Equal(t, false, cfg.TestBool, "TestBool should match environment variable")
}

func TestLoad_DefaultValues(t *testing.T) {
	// Clean environment variables to ensure defaults are used
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	os.Unsetenv("TEST_BOOL_DEFAULT")

	var cfg TestConfigDefault
	err := config.Load(&cfg)

	require.NoError(t, err, "Load should not return an error when using defaults")
	assert.Equal(t, "default_value", cfg.TestString, "TestString should use default value")
	assert.Equal(t, 42, cfg.TestInt, "TestInt should use default value")
	assert.Equal(t, true, cfg.TestBool, "TestBool should use default value")
}

func TestLoad_RequiredMissing(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	config.ResetCache()

	var cfg RequiredConfig
	err := config.Load(&cfg)

	require.Error(t, err, "Load should fail when a required variable is missing")
	assert.True(t, errors.Is(err, config.ErrParsingConfig), "Error should be ErrParsingConfig")
}

func TestLoad_Singleton(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "first")

	var firstConfig TestConfigSingleton
	err := config.Load(&firstConfig)
	require.NoError(t, err)
	assert.Equal(t, "first", firstConfig.TestString)

	// Changing the environment must not affect the cached value
	t.Setenv("TEST_STRING_SINGLETON", "second")

	var secondConfig TestConfigSingleton
	err = config.Load(&secondConfig)
	require.NoError(t, err)
	assert.Equal(t, "first", secondConfig.TestString, "cached value should be returned on subsequent loads")
}

func TestLoad_DifferentTypes(t *testing.T) {
	t.Setenv("VALUE_TYPE1", "value1")
	t.Setenv("VALUE_TYPE2", "value2")

	var config1 TestConfigDifferent1
	err := config.Load(&config1)
	require.NoError(t, err)

	var config2 TestConfigDifferent2
	err = config.Load(&config2)
	require.NoError(t, err)

	assert.Equal(t, "value1", config1.Value, "each type should be cached independently")
	assert.Equal(t, "value2", config2.Value, "each type should be cached independently")
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *TestConfigDefault
	err := config.Load(cfg)

	require.Error(t, err, "Load should fail with a nil pointer")
	assert.ErrorIs(t, err, config.ErrNilPointer, "Error should be ErrNilPointer")
}

func TestLoadEnv_CustomPath(t *testing.T) {
	os.Unsetenv("TENANT_DEFAULT_DOMAIN")
	os.Unsetenv("TENANT_LOOKUP_TIMEOUT")
	os.Unsetenv("TENANT_SKIP_PATHS")
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom")
	require.NoError(t, err, "LoadEnv should not return error with valid file")

	var cfg ResolverEnvConfig
	err = config.Load(&cfg)
	require.NoError(t, err, "Load should successfully parse config after LoadEnv")

	assert.Equal(t, "tenants.example.com", cfg.DefaultDomain)
	assert.Equal(t, 750*time.Millisecond, cfg.LookupTimeout)
	assert.Equal(t, []string{"/health", "/metrics"}, cfg.SkipPaths)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/non_existent_file.env")
	require.Error(t, err, "LoadEnv should fail for an explicitly named missing file")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	t.Setenv("TENANT_DEFAULT_DOMAIN", "process.example.com")
	config.ResetCache()

	err := config.LoadEnv("testdata/.env.custom")
	require.NoError(t, err)

	var cfg ResolverEnvConfig
	err = config.Load(&cfg)
	require.NoError(t, err)

	assert.Equal(t, "process.example.com", cfg.DefaultDomain, "already-set process env should not be overridden by file contents")
}

func TestMustLoadEnv_Panics(t *testing.T) {
	assert.NotPanics(t, func() {
		config.MustLoadEnv("testdata/.env.custom")
	})
	assert.Panics(t, func() {
		config.MustLoadEnv("testdata/non_existent_file.env")
	})
}

func TestForceReloadConfig(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "initial")
	config.ResetCache()

	var cfg TestConfigSingleton
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "initial", cfg.TestString)

	t.Setenv("TEST_STRING_SINGLETON", "reloaded")

	require.NoError(t, config.ForceReloadConfig(&cfg))
	assert.Equal(t, "reloaded", cfg.TestString, "force reload should re-read the environment")

	// And the cache now serves the reloaded value.
	var again TestConfigSingleton
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "reloaded", again.TestString)
}
