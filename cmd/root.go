package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/config"
	"github.com/dotcommander/riverwqi/internal/log"
	"github.com/dotcommander/riverwqi/internal/model"
	"github.com/dotcommander/riverwqi/internal/outputters"
)

var (
	configFile   string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
)

// exitFunc is swapped out by tests
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "riverwqi",
	Short: "Sungan River water quality index predictor",
	Long: `riverwqi predicts water quality parameters of the Sungan River from the
distance to the mining site, scores them against DENR standards and reports the
weighted Water Quality Index (WQI).

Use the subcommands to evaluate single distances, batches, parameter trends, or
to run the web dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .riverwqirc.{json,yaml,yml} in the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format ("+strings.Join(config.Formats, "|")+")")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout, or sungan_report.<ext> for reports)")

	// subcommand flags are registered by their own init functions
	cobra.OnInitialize(bindFlags)
}

// bindFlags binds every command flag to its config key.
func bindFlags() {
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("plot.maxDistance", trendCmd.Flags().Lookup("max"))
	viper.BindPFlag("plot.points", trendCmd.Flags().Lookup("points"))
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("batch.root", batchCmd.Flags().Lookup("root"))
}

// runCommand wraps a command body with the shared error handling.
func runCommand(run func(args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	}
}

// setup loads the configuration and initialises logging.
func setup() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if err := log.Init(cfg.Verbose); err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.Debugf("loaded config from %s", cfg.File)
	}
	return cfg, nil
}

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(log.Logger())
}

func newOutputter(cfg *config.Config) *outputters.Outputter {
	return outputters.NewOutputter(cfg, log.Logger())
}

// parseDistance parses a distance argument. Range checks happen in the
// predictor.
func parseDistance(arg string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: distance is not a number: %q", model.ErrInvalidInput, arg)
	}
	return d, nil
}
