package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KhalidAdan/tables/internal/config"
	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/modelfile"
	"github.com/KhalidAdan/tables/internal/ui"
)

var validateModel string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a model file for problems",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateModel, "model", "m", "model.yaml", "Model file (YAML or JSON)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := modelfile.NewStore(config.AppFs).Load(cfg.ModelPath)
	if err != nil {
		return err
	}

	if err := model.Validate(m); err != nil {
		for _, e := range unwrapAll(err) {
			ui.PrintError(cmd.ErrOrStderr(), "%v", e)
		}
		return fmt.Errorf("%s is invalid", cfg.ModelPath)
	}

	ui.PrintSuccess(cmd.OutOrStdout(), "%s is valid (%d entities, %d relations)", cfg.ModelPath, len(m.Entities), len(m.Relations))
	return nil
}

// unwrapAll flattens an errors.Join tree into its leaves
func unwrapAll(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var errs []error
	for _, e := range joined.Unwrap() {
		errs = append(errs, unwrapAll(e)...)
	}
	return errs
}
