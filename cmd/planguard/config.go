package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"planguard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the planguard configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .planguard/config.json",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		if err := cfg.Save(rootFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Wrote .planguard/config.json")
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		output, err := formatJSON(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
