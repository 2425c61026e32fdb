package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsyncd",
	Short: "Real-time sync server for collaborative writing sessions",
	Long: `docsyncd relays edit and cursor events between writer clients attached
to the same document room. It performs no merging and stores nothing: every
member receives every other member's events in arrival order, and the editors
decide how to apply them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
