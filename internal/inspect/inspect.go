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
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ostafen/meshcheck/internal/clamav"
	"github.com/ostafen/meshcheck/internal/env"
	"github.com/ostafen/meshcheck/internal/format"
	"github.com/ostafen/meshcheck/internal/fs"
	"github.com/ostafen/meshcheck/internal/logger"
	"github.com/ostafen/meshcheck/internal/mail"
	"github.com/ostafen/meshcheck/pkg/pbar"
	"github.com/ostafen/meshcheck/pkg/report"
	fmtutil "github.com/ostafen/meshcheck/pkg/util/format"
	osutils "github.com/ostafen/meshcheck/pkg/util/os"
)

const AutoFormat = "auto"

type Options struct {
	Format        string // registry name, or "" / "auto" to detect per file
	ExtraKeywords []string
	Decode        format.DecodePolicy
	Exts          []string
	MaxFileSize   uint64 // 0 disables the limit
	ReportFile    string
	LogDir        string
	DisableLog    bool
	LogLevel      slog.Level

	Scanner     clamav.Scanner // nil disables antivirus scanning
	Mailer      mail.Mailer
	MailTo      []string
	MailSubject string

	Out io.Writer // console output, os.Stdout when nil
}

type Result struct {
	Path     string
	Size     int64
	Format   string
	Verdict  format.Verdict
	Checksum uint64
	AV       *clamav.FileResult
	Skipped  string // reason the file was not validated
}

func (r *Result) Infected() bool {
	return r.AV != nil && r.AV.Infected()
}

type Summary struct {
	RunID      string
	ReportFile string
	LogFile    string
	Results    []Result
	Valid      int
	Invalid    int
	Skipped    int
	Infected   int
	TotalBytes int64
	Duration   time.Duration
	MailErr    error
}

func (s *Summary) Checked() int {
	return s.Valid + s.Invalid
}

// Text renders the summary as the plain-text body used for notifications.
func (s *Summary) Text() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s run %s\n", env.AppName, s.RunID)
	fmt.Fprintf(&sb, "Checked: %d, Valid: %d, Invalid: %d, Skipped: %d, Infected: %d\n\n",
		s.Checked(), s.Valid, s.Invalid, s.Skipped, s.Infected)

	for _, res := range s.Results {
		switch {
		case res.Skipped != "":
			fmt.Fprintf(&sb, "%s: skipped (%s)\n", res.Path, res.Skipped)
		default:
			fmt.Fprintf(&sb, "%s: [%s] %s", res.Path, res.Format, res.Verdict.String())
			if res.Infected() {
				fmt.Fprintf(&sb, " [%s %s]", res.AV.Status, res.AV.Signature)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func absPath(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

// Run validates every file denoted by inputs and writes a report. Problems
// with individual files end up in the report; only failures to set up the
// report or the log abort the run.
func Run(ctx context.Context, inputs []string, opts Options) (*Summary, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	console := logger.New(out, logger.InfoLevel)

	registry, err := format.BuildRegistry(opts.Exts...)
	if err != nil {
		return nil, err
	}

	var fixed *format.FileFormat
	if opts.Format != "" && opts.Format != AutoFormat {
		f, err := registry.Lookup(opts.Format)
		if err != nil {
			return nil, err
		}
		fixed = &f
	}

	session := GenSessionID()

	reportFileName := opts.ReportFile
	if reportFileName == "" {
		reportFileName = fmt.Sprintf("report_%s.xml", session)
	}

	outFile, err := os.Create(reportFileName)
	if err != nil {
		return nil, err
	}
	defer outFile.Close()

	summary := &Summary{
		RunID:      report.NewRunID(),
		ReportFile: absPath(reportFileName),
	}

	reportWriter := report.NewWriter(outFile)

	err = reportWriter.WriteHeader(report.Header{
		OutputVersion: report.OutputVersion,
		RunID:         summary.RunID,
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{Inputs: inputs},
	})
	if err != nil {
		return nil, err
	}

	if !opts.DisableLog {
		logDir := opts.LogDir
		if logDir == "" {
			logDir = filepath.Dir(reportFileName)
		}
		summary.LogFile = absPath(filepath.Join(logDir, session) + ".log")
	}

	log, logFile, err := setupLogger(summary.LogFile, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	exts := opts.Exts
	if len(exts) == 0 {
		exts = registry.Exts()
	}

	type target struct {
		path string
		size int64
		err  error
	}

	var (
		targets    []target
		totalBytes int64
	)
	for _, input := range inputs {
		files, err := osutils.ListFiles(input, exts...)
		if err != nil {
			targets = append(targets, target{path: input, err: err})
			continue
		}
		for _, path := range files {
			finfo, err := os.Stat(path)
			if err != nil {
				targets = append(targets, target{path: path, err: err})
				continue
			}
			targets = append(targets, target{path: path, size: finfo.Size()})
			totalBytes += finfo.Size()
		}
	}

	formatNames := make([]string, 0, len(registry.Formats()))
	for _, f := range registry.Formats() {
		formatNames = append(formatNames, f.Name)
	}

	console.Info("Starting inspection...")
	console.Infof("Inputs: \t%s", strings.Join(inputs, ", "))
	console.Infof("Formats: \t%s", strings.Join(formatNames, ","))
	if opts.Scanner != nil {
		console.Info("Antivirus: \tenabled")
	}

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = summary.LogFile
	}
	console.Infof("Output Log: \t%s", outLog)
	console.Infof("Checking %d files (%s)...", len(targets), fmtutil.FormatBytes(totalBytes))

	validateOpts := []format.Option{
		format.WithExtraKeywords(opts.ExtraKeywords...),
		format.WithDecodePolicy(opts.Decode),
	}

	start := time.Now()
	bar := pbar.NewProgressBarState(len(targets), totalBytes)
	bar.Out = out

	var runErr error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := Result{Path: t.path, Size: t.size}

		switch {
		case t.err != nil:
			res.Verdict = format.Verdict{Message: "Error processing file: " + t.err.Error(), Err: t.err}
			log.Error("unable to stat file", "path", t.path, "err", t.err)
		case opts.MaxFileSize > 0 && uint64(t.size) > opts.MaxFileSize:
			res.Skipped = fmt.Sprintf("file exceeds maximum size of %s", fmtutil.FormatBytes(int64(opts.MaxFileSize)))
			log.Info("file skipped", "path", t.path, "size", t.size, "reason", res.Skipped)
		default:
			inspectFile(ctx, log, &res, registry, fixed, opts.Scanner, validateOpts)
		}

		switch {
		case res.Skipped != "":
			summary.Skipped++
		case res.Verdict.Valid:
			summary.Valid++
		default:
			summary.Invalid++
		}
		if res.Infected() {
			summary.Infected++
		}
		summary.TotalBytes += res.Size
		summary.Results = append(summary.Results, res)

		if err := reportWriter.WriteFileObject(toFileObject(&res)); err != nil {
			log.Error("unable to write report entry", "path", res.Path, "err", err)
		}

		bar.Add(res.Size, res.Skipped != "" || res.Verdict.Valid)
		bar.Render(false)
	}
	bar.Render(true)
	bar.Finish()

	if err := reportWriter.Close(); err != nil {
		return summary, err
	}

	summary.Duration = time.Since(start)

	console.Info("Inspection completed!")
	console.Infof("Files checked: \t%d", summary.Checked())
	console.Infof("Valid: \t%d", summary.Valid)
	console.Infof("Invalid: \t%d", summary.Invalid)
	if summary.Skipped > 0 {
		console.Infof("Skipped: \t%d", summary.Skipped)
	}
	if opts.Scanner != nil {
		console.Infof("Infected: \t%d", summary.Infected)
	}
	console.Infof("Total data: \t%s", fmtutil.FormatBytes(summary.TotalBytes))
	console.Infof("Duration: \t%s", FormatDurationHMS(summary.Duration))
	console.Infof("Report saved to: \t%s", summary.ReportFile)

	if !opts.DisableLog {
		console.Infof("Detailed log: \t%s", summary.LogFile)
	}

	if runErr == nil && opts.Mailer != nil && len(opts.MailTo) > 0 {
		subject := opts.MailSubject
		if subject == "" {
			subject = fmt.Sprintf("%s inspection results", env.AppName)
		}

		if err := opts.Mailer.Send(ctx, opts.MailTo, subject, summary.Text()); err != nil {
			summary.MailErr = err
			console.Warnf("Unable to send results to %s: %v", strings.Join(opts.MailTo, ", "), err)
			log.Error("mail delivery failed", "to", opts.MailTo, "err", err)
		} else {
			console.Infof("Results sent to: \t%s", strings.Join(opts.MailTo, ", "))
		}
	}
	return summary, runErr
}

func inspectFile(
	ctx context.Context,
	log *slog.Logger,
	res *Result,
	registry *format.FormatRegistry,
	fixed *format.FileFormat,
	scanner clamav.Scanner,
	validateOpts []format.Option,
) {
	var (
		ff  format.FileFormat
		err error
	)
	if fixed != nil {
		ff = *fixed
	} else {
		ff, err = registry.Detect(res.Path)
	}
	if errors.Is(err, format.ErrUnknownFormat) {
		res.Skipped = "unrecognized file format"
		log.Warn("unable to detect format", "path", res.Path, "err", err)
		return
	}
	if err != nil {
		res.Verdict = format.Verdict{Message: "Error processing file: " + err.Error(), Err: err}
		log.Error("unable to read file", "path", res.Path, "err", err)
		return
	}

	res.Format = ff.Name
	res.Verdict = ff.Validate(res.Path, validateOpts...)

	log.Debug("file validated",
		"path", res.Path,
		"format", ff.Name,
		"valid", res.Verdict.Valid,
		"message", res.Verdict.Message,
	)
	if !res.Verdict.Clean() {
		log.Info("file rejected or flagged", "path", res.Path, "format", ff.Name, "verdict", res.Verdict.String())
	}

	sum, err := checksum(res.Path)
	if err != nil {
		log.Error("unable to compute checksum", "path", res.Path, "err", err)
	} else {
		res.Checksum = sum
	}

	if scanner == nil {
		return
	}

	avReport, err := scanner.Scan(ctx, res.Path)
	if err != nil {
		res.AV = &clamav.FileResult{Path: res.Path, Status: clamav.StatusError, Signature: err.Error()}
		log.Error("antivirus scan failed", "path", res.Path, "err", err)
		return
	}

	row, ok := avReport.Status(res.Path)
	if !ok && len(avReport.Files) > 0 {
		// the daemon reports absolute paths
		row, ok = avReport.Files[0], true
	}
	if !ok {
		status := clamav.StatusOK
		if !avReport.Clean() {
			status = clamav.StatusFound
		}
		row = clamav.FileResult{Path: res.Path, Status: status}
	}
	res.AV = &row

	if row.Infected() {
		log.Warn("malware detected", "path", res.Path, "signature", row.Signature)
	}
}

func checksum(path string) (uint64, error) {
	f, err := fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func toFileObject(res *Result) report.FileObject {
	obj := report.FileObject{
		Filename:     res.Path,
		FileSize:     uint64(res.Size),
		Format:       res.Format,
		Valid:        res.Verdict.Valid,
		Message:      res.Verdict.Message,
		Count:        res.Verdict.Count,
		Unrecognized: res.Verdict.Unrecognized,
	}
	if res.Skipped != "" {
		obj.Message = "Skipped: " + res.Skipped
	}
	if res.Checksum != 0 {
		obj.Checksum = fmt.Sprintf("%016x", res.Checksum)
	}
	if res.AV != nil {
		obj.Antivirus = &report.AVOutcome{
			Status:    string(res.AV.Status),
			Signature: res.AV.Signature,
		}
	}
	return obj
}

// GenSessionID creates a unique file name for an inspection session.
// The format is "YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a time.Duration into HH:MM:SS string.
// It handles durations that might be less than an hour or greater than 24 hours.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger initializes a new slog.Logger that writes to a specified file or discards output.
// If logFilePath is empty, logs are discarded. The returned *os.File is nil in
// that case, and must otherwise be closed by the caller.
func setupLogger(logFilePath string, minLevel slog.Level) (*slog.Logger, *os.File, error) {
	var writer io.Writer
	var file *os.File

	if logFilePath == "" {
		writer = io.Discard
	} else {
		logDir := filepath.Dir(logFilePath)
		if _, err := osutils.EnsureDir(logDir); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
		}

		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
		}
		writer = f
		file = f
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level:     minLevel,
		AddSource: true,
	})

	return slog.New(handler), file, nil
}
