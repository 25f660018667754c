package trophylodge

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var Version = "(dev)"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trophylodge %s %s/%s\n", Version, runtime.GOOS, runtime.GOARCH)
	},
}
