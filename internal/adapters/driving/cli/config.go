package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/core/domain"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
	Long: `Settings are read from ~/.quarry/config.toml (or --config), then
overridden by environment variables such as QUARRY_CORPUS_DIR,
QUARRY_INDEX_PATH and CHAT_MODEL. A .env file in the working
directory is loaded first.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as TOML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate settings and test the language model connection",
	Args:  cobra.NoArgs,
	RunE:  runConfigCheck,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured("config")
	}
	fmt.Fprintln(cmd.OutOrStdout(), configStore.Path())
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured("config")
	}

	path := configStore.Path()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := configStore.Save(domain.DefaultSettings()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if err := settings.Validate(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Settings: ok")

	if services == nil || services.CheckLLM == nil {
		fmt.Fprintln(out, "LLM: not checked")
		return nil
	}
	if err := services.CheckLLM(cmd.Context()); err != nil {
		fmt.Fprintf(out, "LLM: %v\n", err)
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "LLM: ok (%s)\n", settings.LLM.Model)
	return nil
}
