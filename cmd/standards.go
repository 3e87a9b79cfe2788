package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/log"
	"github.com/dotcommander/riverwqi/internal/output"
)

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Show the DENR standards, WQI weights and rating bands",
	Long: `Prints the reference tables used for scoring: the DENR water quality
standard for each parameter, the WQI weight of each scored parameter, and the
score bands of each quality rating.`,
	Args: cobra.NoArgs,
	Run:  runCommand(runStandards),
}

func init() {
	rootCmd.AddCommand(standardsCmd)
}

func runStandards(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	return newOutputter(cfg).Tables(output.DefaultTables())
}
