package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/KhalidAdan/tables/internal/config"
	"github.com/KhalidAdan/tables/internal/generator"
	"github.com/KhalidAdan/tables/internal/model"
	"github.com/KhalidAdan/tables/internal/modelfile"
	"github.com/KhalidAdan/tables/internal/ui"
	"github.com/KhalidAdan/tables/internal/watch"
)

var (
	generateModel     string
	generateTarget    string
	generateOutput    string
	generateOutputDir string
	generateAll       bool
	generateWatch     bool
	generateRender    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a schema from a model file",
	Long: `Generate a schema definition from a model file.

The target is taken from --target, then from the model file, then from
configuration. With --all every target is generated: into one file per
target with --output-dir, otherwise as a single markdown document.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "model.yaml", "Model file (YAML or JSON)")
	generateCmd.Flags().StringVarP(&generateTarget, "target", "t", "postgres", "Target: postgres, mysql, sqlite or prisma")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().StringVarP(&generateOutputDir, "output-dir", "d", "", "Output directory, one file per target")
	generateCmd.Flags().BoolVarP(&generateAll, "all", "a", false, "Generate every target")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate when the model file changes")
	generateCmd.Flags().BoolVar(&generateRender, "render", false, "Render the --all markdown document for the terminal")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.OutputPath != "" && cfg.OutputDir != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}
	if generateRender && !generateAll {
		return fmt.Errorf("--render requires --all")
	}

	g := &schemaGenerator{
		cmd:          cmd,
		cfg:          cfg,
		store:        modelfile.NewStore(config.AppFs),
		targetForced: cmd.Flags().Changed("target"),
	}

	if !generateWatch {
		return g.run()
	}
	return watchModel(cmd, cfg.ModelPath, g.run)
}

// schemaGenerator runs one load, validate and generate cycle
type schemaGenerator struct {
	cmd          *cobra.Command
	cfg          *config.Config
	store        *modelfile.Store
	targetForced bool
}

func (g *schemaGenerator) run() error {
	m, err := g.store.Load(g.cfg.ModelPath)
	if err != nil {
		return err
	}
	if err := model.Validate(m); err != nil {
		return err
	}

	if generateAll {
		return g.writeAll(m)
	}

	target := g.target(m)
	out, err := generator.Generate(m, target)
	if err != nil {
		return fmt.Errorf("failed to generate %s schema: %w", target, err)
	}

	if g.cfg.OutputDir != "" {
		paths, err := generator.NewDirWriter(config.AppFs, g.cfg.OutputDir).Write(m, map[model.Target]string{target: out})
		if err != nil {
			return err
		}
		g.reportWritten(paths...)
		return nil
	}
	return g.emit(out + "\n")
}

func (g *schemaGenerator) writeAll(m *model.Model) error {
	outputs, err := generator.GenerateAll(m)
	if err != nil {
		return fmt.Errorf("failed to generate schemas: %w", err)
	}

	if g.cfg.OutputDir != "" {
		paths, err := generator.NewDirWriter(config.AppFs, g.cfg.OutputDir).Write(m, outputs)
		if err != nil {
			return err
		}
		g.reportWritten(paths...)
		return nil
	}

	var buf bytes.Buffer
	if err := generator.NewMarkdownWriter(&buf).Format(m, outputs); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	if generateRender && g.cfg.OutputPath == "" {
		return ui.PrintMarkdown(g.cmd.OutOrStdout(), buf.String())
	}
	return g.emit(buf.String())
}

// target picks --target when given, then the model's own target, then config
func (g *schemaGenerator) target(m *model.Model) model.Target {
	if !g.targetForced && m.Target != "" {
		return m.Target
	}
	return model.Target(g.cfg.Target)
}

func (g *schemaGenerator) emit(content string) error {
	if g.cfg.OutputPath == "" {
		_, err := fmt.Fprint(g.cmd.OutOrStdout(), content)
		return err
	}

	if dir := filepath.Dir(g.cfg.OutputPath); dir != "." {
		if err := config.AppFs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(config.AppFs, g.cfg.OutputPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	g.reportWritten(g.cfg.OutputPath)
	return nil
}

func (g *schemaGenerator) reportWritten(paths ...string) {
	for _, p := range paths {
		ui.PrintSuccess(g.cmd.ErrOrStderr(), "wrote %s", p)
	}
}

// watchModel runs generate on every change to path until interrupted.
// Failures are reported and watching continues.
func watchModel(cmd *cobra.Command, path string, generate func() error) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewWatcher(path, func() error {
		if err := generate(); err != nil {
			ui.PrintError(cmd.ErrOrStderr(), "%v", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer w.Stop()

	if err := w.Start(); err != nil {
		return err
	}
	ui.PrintInfo(cmd.ErrOrStderr(), "watching %s, press Ctrl+C to stop", path)

	<-ctx.Done()
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
