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
package cmd

import (
	"fmt"
	"os"

	"github.com/ostafen/meshcheck/internal/format"
	"github.com/ostafen/meshcheck/internal/inspect"
	"github.com/ostafen/meshcheck/internal/logger"
	utilsfmt "github.com/ostafen/meshcheck/pkg/util/format"
	"github.com/spf13/cobra"
)

func DefineValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate STL and OBJ files",
		Long: `The 'validate' command checks every STL and OBJ file found at the given paths.
Directories are walked recursively. The format of each file is detected from its extension and content unless --format is given.
Results are written to an XML report, and can optionally be scanned for malware and mailed.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunValidate,
	}

	cmd.Flags().String("format", inspect.AutoFormat, "validator to use (auto, stl-binary, stl-ascii, obj)")
	cmd.Flags().StringSlice("extra-keywords", nil, "additional keywords accepted in ASCII STL files")
	cmd.Flags().String("decode", "", "how to decode non UTF-8 text (ignore, replace, latin1)")
	cmd.Flags().StringSlice("ext", nil, "file extensions to validate")
	cmd.Flags().String("max-file-size", "", "skip files larger than this size")
	cmd.Flags().StringP("output", "o", "", "the path of the report file")
	cmd.Flags().Bool("av", false, "scan every validated file for malware")
	cmd.Flags().StringSlice("mail-to", nil, "send the results to these addresses")
	cmd.Flags().Bool("no-log", false, "disable logging")
	cmd.Flags().String("config", "", "path to the YAML configuration file")

	return cmd
}

func RunValidate(cmd *cobra.Command, args []string) error {
	opts, err := parseValidateOptions(cmd)
	if err != nil {
		return err
	}

	summary, err := inspect.Run(cmd.Context(), args, opts)
	if err != nil {
		return err
	}

	if summary.Invalid > 0 || summary.Infected > 0 {
		return fmt.Errorf("%d invalid and %d infected files", summary.Invalid, summary.Infected)
	}
	return nil
}

func parseValidateOptions(cmd *cobra.Command) (inspect.Options, error) {
	cfg, file, err := loadConfig(cmd)
	if err != nil {
		return inspect.Options{}, err
	}

	formatName, _ := cmd.Flags().GetString("format")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	outputFile, _ := cmd.Flags().GetString("output")
	logLevel, _ := cmd.Flags().GetString("log-level")
	withAV, _ := cmd.Flags().GetBool("av")

	decode := cfg.Decode
	if cmd.Flags().Changed("decode") {
		decode, _ = cmd.Flags().GetString("decode")
	}
	policy, err := format.ParseDecodePolicy(decode)
	if err != nil {
		return inspect.Options{}, err
	}

	maxFileSize := cfg.MaxFileSize
	if cmd.Flags().Changed("max-file-size") {
		maxFileSize, _ = cmd.Flags().GetString("max-file-size")
	}
	maxBytes, err := utilsfmt.ParseBytes(maxFileSize)
	if err != nil {
		return inspect.Options{}, err
	}

	opts := inspect.Options{
		Format:        formatName,
		ExtraKeywords: stringSliceOr(cmd, "extra-keywords", file.STL.ExtraKeywords),
		Decode:        policy,
		Exts:          stringSliceOr(cmd, "ext", file.Inspect.Extensions),
		MaxFileSize:   maxBytes,
		ReportFile:    outputFile,
		DisableLog:    disableLog,
		LogLevel:      logger.ParseLevel(logLevel).Slog(),
		MailTo:        stringSliceOr(cmd, "mail-to", file.Mail.To),
		MailSubject:   file.Mail.Subject,
		Out:           os.Stdout,
	}

	if withAV {
		opts.Scanner = cfg.Scanner()
	}
	if len(opts.MailTo) > 0 {
		opts.Mailer = cfg.Mailer()
	}
	return opts, nil
}
