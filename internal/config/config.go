// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package config

import (
	"fmt"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/ostafen/meshcheck/internal/clamav"
	"github.com/ostafen/meshcheck/internal/format"
	"github.com/ostafen/meshcheck/internal/mail"
	utilsfmt "github.com/ostafen/meshcheck/pkg/util/format"
)

// EnvPrefix is prepended to every variable name below.
const EnvPrefix = "MESHCHECK_"

type Config struct {
	// Antivirus
	ClamscanPath string `env:"CLAMSCAN_PATH,default:/usr/bin/clamscan"`
	ClamdAddress string `env:"CLAMD_ADDRESS"` // e.g. unix:///var/run/clamav/clamd.ctl

	// Mail
	MailPath     string `env:"MAIL_PATH,default:/usr/bin/mail"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default:587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME,default:meshcheck"`
	SMTPTLS      string `env:"SMTP_TLS,default:starttls"` // none, tls, starttls

	// Validation
	Decode      string `env:"DECODE,default:ignore"`
	MaxFileSize string `env:"MAX_FILE_SIZE,default:64MB"`

	ConfigFile string `env:"CONFIG_FILE,default:meshcheck.yaml"`
}

// Load reads the configuration from MESHCHECK_ prefixed environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.DecodePolicy(); err != nil {
		return err
	}
	if _, err := c.MaxFileSizeBytes(); err != nil {
		return fmt.Errorf("invalid %sMAX_FILE_SIZE: %w", EnvPrefix, err)
	}
	switch c.SMTPTLS {
	case mail.TLSNone, mail.TLSImplicit, mail.TLSStart:
	default:
		return fmt.Errorf("invalid %sSMTP_TLS %q: expected none, tls or starttls", EnvPrefix, c.SMTPTLS)
	}
	return nil
}

func (c *Config) DecodePolicy() (format.DecodePolicy, error) {
	return format.ParseDecodePolicy(c.Decode)
}

func (c *Config) MaxFileSizeBytes() (uint64, error) {
	return utilsfmt.ParseBytes(c.MaxFileSize)
}

// IsSMTPEnabled reports whether mail should go through an SMTP relay
// instead of the local mail command.
func (c *Config) IsSMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c *Config) Mailer() mail.Mailer {
	if c.IsSMTPEnabled() {
		return &mail.SMTPMailer{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.SMTPFrom,
			FromName: c.SMTPFromName,
			TLS:      c.SMTPTLS,
		}
	}
	return mail.NewCommandMailer(c.MailPath)
}

// Scanner prefers a clamd daemon when an address is configured.
func (c *Config) Scanner() clamav.Scanner {
	if c.ClamdAddress != "" {
		return clamav.NewDaemonScanner(c.ClamdAddress)
	}
	return clamav.NewExecScanner(c.ClamscanPath)
}
