// Init command: create the config directory with a default config.yaml.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration directory and default config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := resolveConfigDir()
			if err := ensureConfigDir(dir); err != nil {
				return fmt.Errorf("ensure config dir: %w", err)
			}
			if err := ensureDefaultConfigFile(dir); err != nil {
				return fmt.Errorf("ensure default config: %w", err)
			}
			fmt.Println("initialized", filepath.Join(dir, configFileExt))
			return nil
		},
	}
}
