package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/flashmaster/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the config file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, err := configPath(cmd)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := cfg.DBPath()
		if err != nil {
			return err
		}
		logPath, err := cfg.LogPath()
		if err != nil {
			return err
		}
		timeout, _ := cfg.Timeout()
		p := cfg.Provider()

		provider := p.Provider
		if provider == "" {
			provider = "(none: set an API key to enable AI import)"
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:  %s\n", dbPath)
		fmt.Fprintf(out, "Log file:  %s (%s)\n", logPath, cfg.Log.Level)
		fmt.Fprintf(out, "Provider:  %s\n", provider)
		if p.Provider != "" {
			fmt.Fprintf(out, "Model:     %s\n", p.ModelOrDefault())
		}
		fmt.Fprintf(out, "Timeout:   %s\n", timeout)
		return nil
	},
}

func configPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
