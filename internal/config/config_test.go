package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                  "8000",
		Env:                   "development",
		APIBaseURL:            "http://localhost:8000",
		DBDriver:              "sqlite",
		DBPath:                "test.db",
		MaxUploadSizeMB:       5,
		StorageBackend:        "local",
		UploadDir:             "uploads",
		GatewayTimeoutSeconds: 10,
		TracingSampleRatio:    1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"zero upload size", func(c *Config) { c.MaxUploadSizeMB = 0 }, true},
		{"zero gateway timeout", func(c *Config) { c.GatewayTimeoutSeconds = 0 }, true},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = "s3" }, true},
		{"s3 with bucket", func(c *Config) { c.StorageBackend = "s3"; c.S3Bucket = "cards" }, false},
		{"sample ratio out of range", func(c *Config) { c.TracingSampleRatio = 1.5 }, true},
		{"production postgres default password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBHost = "db"
			c.DBName = "studyglobe"
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"production postgres ssl disabled", func(c *Config) {
			c.Env = "prod"
			c.DBDriver = "postgres"
			c.DBHost = "db"
			c.DBName = "studyglobe"
			c.DBPassword = "s3cret-and-long"
			c.DBSSLMode = "disable"
		}, true},
		{"production postgres hardened", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBHost = "db"
			c.DBName = "studyglobe"
			c.DBPassword = "s3cret-and-long"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Helpers(t *testing.T) {
	c := validConfig()
	c.AllowedOrigins = " http://a.test , ,http://b.test"

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Origins())
	assert.Equal(t, int64(5<<20), c.MaxUploadBytes())
	assert.Equal(t, 10*time.Second, c.GatewayTimeout())
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLITE ")
	t.Setenv("API_BASE_URL", "http://api.test:8001/")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "7")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "http://api.test:8001", c.APIBaseURL)
	assert.Equal(t, 7, c.MaxUploadSizeMB)
	assert.NotEmpty(t, c.Port)
}
