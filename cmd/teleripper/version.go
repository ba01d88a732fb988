package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"teleripper/pkg/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := ui.Output()
		fmt.Fprintf(out, "TeleRipper %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", gitCommit)
		fmt.Fprintf(out, "Built: %s\n", buildDate)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
