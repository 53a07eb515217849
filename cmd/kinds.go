package cmd

import (
	"fmt"

	"github.com/Lumos-Labs-HQ/seedling/fake"
	"github.com/spf13/cobra"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the generator kinds usable in a seed plan",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range fake.Kinds() {
			fmt.Println(kind)
		}
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
