package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/log"
)

var reportCmd = &cobra.Command{
	Use:   "report <distance>",
	Short: "Export the evaluation report for one distance",
	Long: `Writes the evaluation report for a distance to a file. The default format is
plain text; use --format pdf, markdown or json for the other forms. Without
--output the report is written to sungan_report.<ext>.

If the PDF cannot be generated the text report is exported instead.`,
	Args: cobra.ExactArgs(1),
	Run:  runCommand(runReport),
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	d, err := parseDistance(args[0])
	if err != nil {
		return err
	}

	ev, err := newAnalyzer().Evaluate(d)
	if err != nil {
		return err
	}

	path, err := newOutputter(cfg).Report(ev)
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		fmt.Printf("Report written to %s\n", path)
	}
	return nil
}
