package cmd

import (
	"fmt"

	"github.com/ostafen/meshcheck/internal/format"
	"github.com/spf13/cobra"
)

func DefineKeywordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords <file>...",
		Short: "List the distinct leading keywords of text files",
		Long: `The 'keywords' command prints the sorted set of first whitespace-separated tokens found on the lines of each file.
It is useful to discover vendor-specific keywords in ASCII STL files before passing them to 'validate --extra-keywords'.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         RunKeywords,
	}

	cmd.Flags().String("decode", "ignore", "how to decode non UTF-8 text (ignore, replace, latin1)")
	return cmd
}

func RunKeywords(cmd *cobra.Command, args []string) error {
	decode, _ := cmd.Flags().GetString("decode")
	policy, err := format.ParseDecodePolicy(decode)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, path := range args {
		keywords, err := format.ExtractKeywords(path, policy)
		if err != nil {
			return err
		}

		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s:\n", path)
		}
		for _, kw := range keywords {
			fmt.Fprintln(w, kw)
		}
	}
	return nil
}
