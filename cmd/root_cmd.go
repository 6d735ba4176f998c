package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tomlkit",
	Short: "Tomlkit reads and rewrites TOML documents.",
	Long:  "Tomlkit is a TOML codec tool. It parses TOML v0.5 documents into a value tree and renders them back as canonical, deterministically ordered TOML.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Tomlkit",
	Long:  `All software has versions. This is Tomlkit's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Tomlkit v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(getCmd)
}
