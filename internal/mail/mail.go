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
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrDisabled is returned by mailers that lack the settings needed to deliver.
var ErrDisabled = errors.New("mail delivery is not configured")

const DefaultMailPath = "/usr/bin/mail"

// Mailer delivers a plain-text message to a list of recipients.
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// CommandMailer hands messages to a local mail(1) compatible binary.
type CommandMailer struct {
	Path string
}

func NewCommandMailer(path string) *CommandMailer {
	if path == "" {
		path = DefaultMailPath
	}
	return &CommandMailer{Path: path}
}

func (m *CommandMailer) Send(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	args := append([]string{"-s", subject}, to...)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, m.Path, args...)
	cmd.Stdin = strings.NewReader(body)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", m.Path, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
