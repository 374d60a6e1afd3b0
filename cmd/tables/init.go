package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/KhalidAdan/tables/internal/config"
	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/modelfile"
	"github.com/KhalidAdan/tables/internal/ui"
)

var (
	initModel       string
	initTarget      string
	initForce       bool
	initInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample model file",
	Long: `Write a sample Student/Class model to start from.

The file format follows the extension: .json writes JSON, anything else YAML.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initModel, "model", "m", "model.yaml", "Model file to create")
	initCmd.Flags().StringVarP(&initTarget, "target", "t", "postgres", "Target recorded in the model")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the model name and target")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := modelfile.NewStore(config.AppFs)
	exists, err := store.Exists(cfg.ModelPath)
	if err != nil {
		return err
	}
	if exists && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.ModelPath)
	}

	name := "Tables App"
	target := model.Target(cfg.Target)
	if initInteractive {
		if name, target, err = promptModel(name, target); err != nil {
			return err
		}
	}
	if _, err := generator.Lookup(target); err != nil {
		return err
	}

	m := model.SampleModel(target)
	m.Name = name
	if err := store.Save(cfg.ModelPath, m); err != nil {
		return err
	}

	ui.PrintSuccess(cmd.OutOrStdout(), "created %s", cfg.ModelPath)
	ui.PrintInfo(cmd.OutOrStdout(), "run `tables generate --model %s` to render it", cfg.ModelPath)
	return nil
}

func promptModel(name string, target model.Target) (string, model.Target, error) {
	options := make([]string, 0, 4)
	for _, t := range generator.Targets() {
		options = append(options, string(t))
	}

	answers := struct {
		Name   string
		Target string
	}{}
	questions := []*survey.Question{
		{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Model name:", Default: name},
			Validate: survey.Required,
		},
		{
			Name:   "target",
			Prompt: &survey.Select{Message: "Target:", Options: options, Default: string(target)},
		},
	}
	if err := survey.Ask(questions, &answers); err != nil {
		return "", "", err
	}
	return answers.Name, model.Target(answers.Target), nil
}
