package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dots/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config file",
	Long: `Write the built-in default config so it can be edited.

Without a path the file goes to ~/.dots/configs/dots.yaml, which is read
automatically on the next start.

Examples:
  dots config init
  dots config init ./dots.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	Run:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the config that would be used",
	Run:   runConfigShow,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(_ *cobra.Command, args []string) {
	path := config.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		fail(errors.New("cannot resolve home directory, pass a path"))
	}

	if err := config.WriteDefault(path, flagForce); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func runConfigShow(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadDots(flagConfig)
	if err != nil {
		fmt.Printf("# %v, showing defaults\n", err)
		cfg = config.DefaultDotsConfig()
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fail(err)
		}
		config.ApplyDotsPreset(&cfg, preset)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fail(err)
	}
	fmt.Print(string(out))
}
