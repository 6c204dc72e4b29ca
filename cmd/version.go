package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped via -ldflags at release build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the qbank version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("qbank %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
