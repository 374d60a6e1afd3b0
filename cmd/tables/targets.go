package main

import (
	"github.com/spf13/cobra"

	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/ui"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the supported output targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintHeader(cmd.OutOrStdout(), "Tables", "Supported targets")

		example := &model.Model{Name: "Tables App"}
		rows := make([][]string, 0)
		for _, target := range generator.Targets() {
			rows = append(rows, []string{
				string(target),
				generator.DisplayName(target),
				generator.FileName(example, target),
			})
		}
		return ui.PrintTable(cmd.OutOrStdout(), []string{"Target", "Dialect", "File"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
