package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/ostafen/meshcheck/internal/clamav"
	"github.com/ostafen/meshcheck/internal/logger"
	"github.com/spf13/cobra"
)

func DefineAVScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "avscan <path>",
		Short: "Scan a file or directory with ClamAV",
		Long: `The 'avscan' command runs clamscan (or asks a clamd daemon) to scan the given path and prints the per-file results followed by the scan summary.
Use --mail-to to send the raw results to a list of recipients.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunAVScan,
	}

	cmd.Flags().String("clamscan", "", "path to the clamscan binary")
	cmd.Flags().String("clamd", "", "address of a clamd daemon (unix:///path or tcp://host:port)")
	cmd.Flags().StringSlice("mail-to", nil, "send the results to these addresses")
	cmd.Flags().String("config", "", "path to the YAML configuration file")
	return cmd
}

func RunAVScan(cmd *cobra.Command, args []string) error {
	cfg, file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("clamscan") {
		cfg.ClamscanPath, _ = cmd.Flags().GetString("clamscan")
		cfg.ClamdAddress = ""
	}
	if cmd.Flags().Changed("clamd") {
		cfg.ClamdAddress, _ = cmd.Flags().GetString("clamd")
	}

	log := logger.New(os.Stdout, logger.InfoLevel)

	scanner := cfg.Scanner()
	if d, ok := scanner.(*clamav.DaemonScanner); ok {
		if err := d.Ping(); err != nil {
			return err
		}
	}

	log.Infof("Scanning %s...", args[0])

	rep, err := scanner.Scan(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tSTATUS\tSIGNATURE")
	for _, f := range rep.Files {
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Path, f.Status, f.Signature)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(rep.Summary) > 0 {
		sb.WriteString("\n")
		for _, name := range summaryKeys(rep.Summary) {
			fmt.Fprintf(&sb, "%s: %s\n", name, rep.Summary[name])
		}
	}
	fmt.Print(sb.String())

	mailTo := stringSliceOr(cmd, "mail-to", file.Mail.To)
	if len(mailTo) > 0 {
		subject := "ClamAV Scan Results"
		body := fmt.Sprintf("Here are the ClamAV scan results for %s:\n\n%s", args[0], sb.String())

		if err := cfg.Mailer().Send(cmd.Context(), mailTo, subject, body); err != nil {
			log.Warnf("Unable to send results to %s: %v", strings.Join(mailTo, ", "), err)
		} else {
			log.Infof("Email sent to %s", strings.Join(mailTo, ", "))
		}
	}

	if !rep.Clean() {
		return fmt.Errorf("%d infected files", len(rep.Infected()))
	}
	return nil
}

// summaryKeys orders summary entries the way clamscan prints them, with
// unknown entries last.
func summaryKeys(s clamav.Summary) []string {
	order := []string{
		"Known viruses", "Engine version", "Scanned directories", "Scanned files",
		"Infected files", "Data scanned", "Data read", "Time", "Start Date", "End Date",
	}

	keys := make([]string, 0, len(s))
	seen := make(map[string]bool, len(s))
	for _, k := range order {
		if _, ok := s[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range s {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
