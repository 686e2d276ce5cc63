// Version command for the txlens CLI.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the txlens release version.
const Version = "0.2.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the txlens version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("txlens", Version)
		},
	}
}
