package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Show schemacheck version",
	Annotations: map[string]string{annotationNoConfig: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "schemacheck v%s\n", Version)

		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "\n  Go:       %s\n", runtime.Version())
			fmt.Fprintf(cmd.OutOrStdout(), "  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
