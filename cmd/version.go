package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the taskboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("taskboard version %s\n", version)
		},
	}
}
