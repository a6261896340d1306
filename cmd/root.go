package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the taskboard application
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "A shared web to-do board backed by Firestore",
	Long: `taskboard serves a shared to-do list in the browser.

Users sign in with their Google account, add dated tasks, check them
off, and see what everyone else is working on. Tasks are stored in a
Google Cloud Firestore collection.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "taskboard version %s\n" .Version}}`)

	// Serving the board is the only mode, so default to it
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
