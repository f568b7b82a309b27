package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/meshcheck/internal/clamav"
	"github.com/ostafen/meshcheck/internal/config"
	"github.com/ostafen/meshcheck/internal/format"
	"github.com/ostafen/meshcheck/internal/mail"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, clamav.DefaultClamscanPath, cfg.ClamscanPath)
	require.Empty(t, cfg.ClamdAddress)
	require.Equal(t, mail.DefaultMailPath, cfg.MailPath)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, mail.TLSStart, cfg.SMTPTLS)
	require.Equal(t, "meshcheck.yaml", cfg.ConfigFile)

	policy, err := cfg.DecodePolicy()
	require.NoError(t, err)
	require.Equal(t, format.DecodeIgnore, policy)

	size, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(64<<20), size)

	require.False(t, cfg.IsSMTPEnabled())
	require.IsType(t, &mail.CommandMailer{}, cfg.Mailer())
	require.IsType(t, &clamav.ExecScanner{}, cfg.Scanner())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MESHCHECK_CLAMD_ADDRESS", "tcp://127.0.0.1:3310")
	t.Setenv("MESHCHECK_SMTP_HOST", "smtp.example.com")
	t.Setenv("MESHCHECK_SMTP_PORT", "465")
	t.Setenv("MESHCHECK_SMTP_FROM", "noreply@example.com")
	t.Setenv("MESHCHECK_SMTP_TLS", "tls")
	t.Setenv("MESHCHECK_DECODE", "latin1")
	t.Setenv("MESHCHECK_MAX_FILE_SIZE", "1GB")

	cfg, err := config.Load()
	require.NoError(t, err)

	policy, err := cfg.DecodePolicy()
	require.NoError(t, err)
	require.Equal(t, format.DecodeLatin1, policy)

	size, err := cfg.MaxFileSizeBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<30), size)

	require.True(t, cfg.IsSMTPEnabled())
	m, ok := cfg.Mailer().(*mail.SMTPMailer)
	require.True(t, ok)
	require.Equal(t, "smtp.example.com", m.Host)
	require.Equal(t, 465, m.Port)
	require.Equal(t, mail.TLSImplicit, m.TLS)

	require.IsType(t, &clamav.DaemonScanner{}, cfg.Scanner())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "decode policy", key: "MESHCHECK_DECODE", val: "utf-16"},
		{name: "max file size", key: "MESHCHECK_MAX_FILE_SIZE", val: "lots"},
		{name: "smtp tls mode", key: "MESHCHECK_SMTP_TLS", val: "ssl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcheck.yaml")
	data := `
stl:
  extra_keywords: [color, material]
inspect:
  extensions: [stl]
mail:
  to:
    - ops@example.com
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	f, err := config.LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, []string{"color", "material"}, f.STL.ExtraKeywords)
	require.Equal(t, []string{"stl"}, f.Inspect.Extensions)
	require.Equal(t, []string{"ops@example.com"}, f.Mail.To)
	require.Equal(t, config.DefaultMailSubject, f.Mail.Subject)
}

func TestLoadFile_Missing(t *testing.T) {
	f, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Nil(t, f)

	f, err = config.LoadFile("")
	require.NoError(t, err)
	require.Nil(t, f)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stl: [unterminated"), 0644))

	_, err := config.LoadFile(path)
	require.Error(t, err)
}
