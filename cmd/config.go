package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/clip-trimmer/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current settings to the configuration file",
	Long: `Write the effective settings (defaults, environment and flags) to the
configuration file so they can be edited. An existing file is kept unless
--force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := config.GetConfigPath()
		if err := writeConfig(cmd, path, force); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

// writeConfig saves the loaded configuration, with persistent flags applied,
// to path.
func writeConfig(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
