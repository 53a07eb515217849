package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the INSERT statements a seed would run",
	Long:  `Render the seed plan without connecting to the database. Every run generates fresh values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, mocks, err := loadMocks()
		if err != nil {
			return err
		}

		for _, m := range mocks {
			color.Cyan("-- %s (%d rows)", m.Table().QualifiedName(), m.Count())
			if !m.Bound() {
				fmt.Printf("%s;\n\n", m.SQL())
				continue
			}

			stmt, err := m.Statement()
			if err != nil {
				return err
			}
			fmt.Printf("%s;\n-- args: %v\n\n", stmt.SQL, stmt.Args)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addPlanFlags(previewCmd)
}
