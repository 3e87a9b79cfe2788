package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/log"
	"github.com/dotcommander/riverwqi/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long: `Serves the interactive dashboard with predictions, key issues, report export,
parameter trend charts and batch analysis, plus a JSON API and Prometheus
metrics at /metrics. Stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	Run:  runCommand(runServe),
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(newAnalyzer(), cfg, log.Logger()).Run(ctx)
}
