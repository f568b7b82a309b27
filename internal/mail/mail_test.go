package mail_test

import (
	"context"
	"net"
	"net/textproto"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/ostafen/meshcheck/internal/mail"
	"github.com/stretchr/testify/require"
)

func TestCommandMailer_Send(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	bodyFile := filepath.Join(dir, "body.txt")

	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\ncat > " + bodyFile + "\n"
	bin := filepath.Join(dir, "mail")
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755))

	m := mail.NewCommandMailer(bin)
	err := m.Send(context.Background(), []string{"ops@example.com", "qa@example.com"}, "Scan results", "cube.stl: OK\n")
	require.NoError(t, err)

	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	require.Equal(t, "-s Scan results ops@example.com qa@example.com\n", string(args))

	body, err := os.ReadFile(bodyFile)
	require.NoError(t, err)
	require.Equal(t, "cube.stl: OK\n", string(body))
}

func TestCommandMailer_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "mail")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\necho 'no relay' >&2\nexit 3\n"), 0755))

	err := mail.NewCommandMailer(bin).Send(context.Background(), []string{"ops@example.com"}, "s", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no relay")
}

func TestCommandMailer_NoRecipients(t *testing.T) {
	m := mail.NewCommandMailer(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, m.Send(context.Background(), nil, "s", "b"))
}

func TestNewCommandMailer_DefaultPath(t *testing.T) {
	require.Equal(t, mail.DefaultMailPath, mail.NewCommandMailer("").Path)
}

func TestSMTPMailer_Disabled(t *testing.T) {
	tests := []struct {
		name string
		m    *mail.SMTPMailer
	}{
		{name: "empty", m: &mail.SMTPMailer{}},
		{name: "no sender", m: &mail.SMTPMailer{Host: "smtp.example.com", Port: 587}},
		{name: "no host", m: &mail.SMTPMailer{From: "noreply@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, tt.m.Enabled())
			err := tt.m.Send(context.Background(), []string{"ops@example.com"}, "s", "b")
			require.ErrorIs(t, err, mail.ErrDisabled)
		})
	}
}

type smtpSession struct {
	from string
	rcpt []string
	data []string
}

// serveSMTP accepts a single plain SMTP session on ln.
func serveSMTP(t *testing.T, ln net.Listener) <-chan smtpSession {
	t.Helper()

	done := make(chan smtpSession, 1)
	go func() {
		defer close(done)

		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		tp := textproto.NewConn(conn)
		var s smtpSession

		_ = tp.PrintfLine("220 localhost ESMTP test")
		for {
			line, err := tp.ReadLine()
			if err != nil {
				return
			}

			verb, arg, _ := strings.Cut(line, " ")
			switch strings.ToUpper(verb) {
			case "EHLO", "HELO":
				_ = tp.PrintfLine("250 localhost")
			case "MAIL":
				s.from = arg
				_ = tp.PrintfLine("250 OK")
			case "RCPT":
				s.rcpt = append(s.rcpt, arg)
				_ = tp.PrintfLine("250 OK")
			case "DATA":
				_ = tp.PrintfLine("354 go ahead")
				s.data, err = tp.ReadDotLines()
				if err != nil {
					return
				}
				_ = tp.PrintfLine("250 OK")
			case "QUIT":
				_ = tp.PrintfLine("221 bye")
				done <- s
				return
			default:
				_ = tp.PrintfLine("502 not implemented")
			}
		}
	}()
	return done
}

func TestSMTPMailer_Send(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	sessions := serveSMTP(t, ln)

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	m := &mail.SMTPMailer{
		Host:     host,
		Port:     port,
		From:     "noreply@example.com",
		FromName: "meshcheck",
		TLS:      mail.TLSNone,
	}
	require.True(t, m.Enabled())

	err = m.Send(context.Background(), []string{"ops@example.com"}, "Scan results", "cube.stl: OK\nbad.obj: INVALID")
	require.NoError(t, err)

	s := <-sessions
	require.Equal(t, "FROM:<noreply@example.com>", s.from)
	require.Equal(t, []string{"TO:<ops@example.com>"}, s.rcpt)
	require.Contains(t, s.data, "From: meshcheck <noreply@example.com>")
	require.Contains(t, s.data, "To: ops@example.com")
	require.Contains(t, s.data, "Subject: Scan results")
	require.Contains(t, s.data, "cube.stl: OK")
	require.Contains(t, s.data, "bad.obj: INVALID")
}

func TestSMTPMailer_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	m := &mail.SMTPMailer{Host: "127.0.0.1", Port: addr.Port, From: "noreply@example.com", TLS: mail.TLSNone}
	err = m.Send(context.Background(), []string{"ops@example.com"}, "s", "b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "SMTP dial failed")
}
