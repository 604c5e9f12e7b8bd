package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinaywadhwa9/anjuli/internal/logging"
	"github.com/vinaywadhwa9/anjuli/internal/splitter"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	var outDir string

	rootCmd := &cobra.Command{
		Use:     "split-poems <poems-file>",
		Short:   "Split a combined poems file into one file per poem",
		Long:    "split-poems parses a text file of '--- date / --- title' sections and writes each poem to <date>_<title>.txt in the output directory.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := splitter.Split(args[0], outDir)
			if err != nil {
				return err
			}
			logging.Success("Successfully split %d poems into '%s' directory", n, outDir)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&outDir, "out", "o", "poems", "Output directory for the split poems")

	if err := rootCmd.Execute(); err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}
