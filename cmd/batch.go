package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/riverwqi/internal/analyzer"
	"github.com/dotcommander/riverwqi/internal/discovery"
	"github.com/dotcommander/riverwqi/internal/log"
)

var (
	batchFiles     []string
	batchRoot      string
	followSymlinks bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [distances...]",
	Short: "Evaluate the WQI for many distances",
	Long: `Evaluates a list of distances and prints one WQI line per distance plus summary
statistics. Distances can be given as comma-separated arguments and/or read from
files matched by --file glob patterns under --root (one distance per line, '#'
starts a comment). Invalid distances are reported and skipped.

Examples:
  riverwqi batch 1,2.5,5,10
  riverwqi batch --file 'surveys/**/*.distances'`,
	Run: runCommand(runBatch),
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchFiles, "file", nil, "Glob pattern of distance files (repeatable, supports **)")
	batchCmd.Flags().StringVar(&batchRoot, "root", ".", "Directory the --file patterns are relative to")
	batchCmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symlinked distance files inside --root")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	var parts []string
	if len(args) > 0 {
		parts = append(parts, strings.Join(args, ","))
	}

	patterns := batchFiles
	if len(patterns) == 0 && len(args) == 0 {
		patterns = cfg.Batch.Patterns
		if len(patterns) == 0 {
			patterns = discovery.DefaultPatterns
		}
	}
	if len(patterns) > 0 {
		surveys, err := discovery.NewFinder(cfg.Batch.Root, followSymlinks).Find(patterns)
		if err != nil {
			return err
		}
		for _, sf := range surveys {
			log.Debugf("read %d distances from %s", len(sf.Lines), sf.Name)
		}
		if text := discovery.Distances(surveys); text != "" {
			parts = append(parts, text)
		}
	}

	entries := analyzer.ParseDistances(strings.Join(parts, "\n"))
	if len(entries) == 0 {
		return fmt.Errorf("no batch distances given: pass distances as arguments or use --file")
	}

	summary := newAnalyzer().EvaluateBatch(entries)
	return newOutputter(cfg).Batch(summary)
}
