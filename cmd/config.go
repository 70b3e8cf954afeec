package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bnema/wlptr/internal/config"
	"github.com/bnema/wlptr/internal/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wlptr configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		rows := [][2]string{
			{"config file", config.GetConfigPath()},
			{"logging.log_level", cfg.Logging.LogLevel},
			{"output.target", cfg.Output.Target},
			{"output.frame_history", fmt.Sprint(cfg.Output.FrameHistory)},
			{"wayland.display", cfg.Wayland.Display},
			{"trace.record_path", cfg.Trace.RecordPath},
			{"inject.device", cfg.Inject.Device},
			{"inject.step_delay_ms", fmt.Sprint(cfg.Inject.StepDelayMs)},
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		}
		return w.Flush()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the current configuration to the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.Save(); err != nil {
			return err
		}
		logger.Infof("Configuration saved to: %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}
