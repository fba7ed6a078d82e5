package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "admissions"
password = "from-file"
dbname = "admissions"

[auth]
jwt_secret = "file-secret"
`

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 15, cfg.OTP.TTL)
	assert.Equal(t, 5, cfg.OTP.MaxAttempts)
	assert.Equal(t, 20, cfg.Auth.ParentSessionTTL)
	assert.Empty(t, cfg.Notifier.URL)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(EnvDBPassword, "env-password")
	t.Setenv(EnvJWTSecret, "env-secret")
	t.Setenv(EnvNotifierToken, "env-token")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-password", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "env-token", cfg.Notifier.Token)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing jwt secret",
			body: `
[database]
host = "localhost"
user = "u"
dbname = "d"
`,
		},
		{
			name: "missing database host",
			body: `
[auth]
jwt_secret = "s"
`,
		},
		{
			name: "negative timeout",
			body: minimalConfig + `
[server]
read_timeout = -1
`,
		},
		{
			name: "relative notifier url",
			body: minimalConfig + `
[notifier]
url = "gateway/messages"
`,
		},
		{
			name: "bootstrap without password",
			body: minimalConfig + `
[bootstrap]
admin_email = "admin@school.test"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "adm", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=adm sslmode=require", d.DSN())
}
