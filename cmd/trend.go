package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/chart"
	"github.com/dotcommander/riverwqi/internal/log"
)

var (
	trendMax    float64
	trendPoints int
	trendPNG    string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show parameter trends over distance",
	Long: `Predicts pH, turbidity, TDS, iron, phosphate and nitrate at evenly spaced
distances from 1 km to --max km and summarises each curve. With --png the curves
are drawn as a chart with the DENR limits as reference lines.`,
	Args: cobra.NoArgs,
	Run:  runCommand(runTrend),
}

func init() {
	trendCmd.Flags().Float64Var(&trendMax, "max", 15, "Maximum distance in km")
	trendCmd.Flags().IntVar(&trendPoints, "points", 120, "Number of distances to predict")
	trendCmd.Flags().StringVar(&trendPNG, "png", "", "Write the trend chart to this PNG file")
	rootCmd.AddCommand(trendCmd)
}

func runTrend(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	trend, err := newAnalyzer().Trend(cfg.Plot.MaxDistance, cfg.Plot.Points)
	if err != nil {
		return err
	}

	if trendPNG != "" {
		data, err := chart.Render(trend)
		if err != nil {
			return err
		}
		if err := os.WriteFile(trendPNG, data, 0644); err != nil {
			return fmt.Errorf("error writing chart %s: %w", trendPNG, err)
		}
		log.Debugf("chart written to %s", trendPNG)
	}

	return newOutputter(cfg).Trend(trend)
}
