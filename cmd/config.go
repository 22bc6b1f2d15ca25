package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"timelog/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long:  `Show the config file location and the effective settings.`,
	Run: func(cmd *cobra.Command, args []string) {
		showConfig()
	},
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	Long:  `Write a documented sample config file to the default location. Fails if one already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		initConfig()
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func showConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	cfg, ok := loadConfig()
	if !ok {
		return
	}

	exists := true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		exists = false
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s", configPath)
	if !exists {
		_, _ = fmt.Fprint(deps.Stdout, " (not present, using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	logPath := cfg.LogFile
	if logPath == "" {
		if logPath, ok = resolveLogPath(cfg); !ok {
			return
		}
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Log file:    %s\n", logPath)
	_, _ = fmt.Fprintf(deps.Stdout, "Date format: %s\n", cfg.DateFormat)
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:    %s\n", cfg.Timezone)
}

func initConfig() {
	configPath, err := deps.ConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	if _, err := os.Stat(configPath); err == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Config file already exists at %s\n", configPath)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Edit it directly, or remove it first to regenerate")
		deps.Exit(1)
		return
	}

	if err := os.WriteFile(configPath, []byte(config.GenerateSampleConfig()), 0644); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to write config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Wrote sample config to %s\n", configPath)
}
