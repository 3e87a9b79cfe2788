package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/log"
)

var predictCmd = &cobra.Command{
	Use:   "predict <distance>",
	Short: "Predict parameters and the WQI at one distance",
	Long: `Predicts every water quality parameter at the given distance (km) from the
mining site, checks each against its DENR standard, and reports the weighted WQI
with its rating and any key issues.`,
	Args: cobra.ExactArgs(1),
	Run:  runCommand(runPredict),
}

func init() {
	rootCmd.AddCommand(predictCmd)
}

func runPredict(args []string) error {
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
	return newOutputter(cfg).Evaluation(ev)
}
