package cmd

import (
	"bufio"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ostafen/meshcheck/pkg/report"
	"github.com/spf13/cobra"
)

func DefineReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <report_file>",
		Short: "Print the content of an inspection report",
		Long: `The 'report' command reads an XML report produced by 'validate' and prints one row per inspected file.
Use --invalid-only to list only files that failed validation or were flagged by the antivirus.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunReport,
	}
	cmd.Flags().Bool("invalid-only", false, "only list invalid or infected files")
	return cmd
}

func RunReport(cmd *cobra.Command, args []string) error {
	reportFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer reportFile.Close()

	hdr, objects, err := report.Read(bufio.NewReader(reportFile))
	if err != nil {
		return err
	}

	invalidOnly, _ := cmd.Flags().GetBool("invalid-only")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:     %s\n", hdr.RunID)
	fmt.Fprintf(out, "Creator: %s %s\n", hdr.Creator.Package, hdr.Creator.Version)
	fmt.Fprintf(out, "Started: %s\n\n", hdr.Creator.ExecutionEnvironment.Start)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tFORMAT\tVALID\tCOUNT\tAV\tMESSAGE")

	for _, o := range objects {
		av := "-"
		infected := false
		if o.Antivirus != nil {
			av = o.Antivirus.Status
			infected = o.Antivirus.Status == "FOUND"
		}
		if invalidOnly && o.Valid && !infected {
			continue
		}

		fmt.Fprintf(w, "%s\t%s\t%t\t%d\t%s\t%s\n",
			o.Filename,
			o.Format,
			o.Valid,
			o.Count,
			av,
			o.Message,
		)
	}
	return w.Flush()
}
