package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/grovetools/sessionmd/config"
	"github.com/grovetools/sessionmd/internal/convert"
	"github.com/grovetools/sessionmd/internal/session"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// NewRootCmd creates the root command for sessionmd.
func NewRootCmd() *cobra.Command {
	var importSpec string
	var configPath string

	cmd := &cobra.Command{
		Use:   "sessionmd [input.jsonl] [output.md]",
		Short: "Convert Claude Code JSONL transcripts to Markdown",
		Long: `Convert Claude Code JSONL conversation transcripts to readable Markdown.

Convert mode takes an existing JSONL file and writes Markdown next to it
(or to an explicit output path). Import mode (--import) finds a session in
the Claude project directories, redacts sensitive data, and renders
Markdown directly into the import output directory without saving a
redacted JSONL copy.`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if importSpec != "" {
				return runImport(importSpec, cfg)
			}

			if len(args) < 1 {
				return errors.New("an input file is required (or use --import)")
			}

			outputPath := ""
			if len(args) > 1 {
				outputPath = args[1]
			}
			return runConvert(args[0], outputPath)
		},
	}

	cmd.Flags().StringVar(&importSpec, "import", "", "Session ID, filename, or path to find, redact, and render")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runConvert(inputPath, outputPath string) error {
	result, err := convert.Convert(inputPath, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("%s Converted %d entries\n", successStyle.Render("✓"), result.Entries)
	fmt.Printf("%s Output written to: %s\n", successStyle.Render("✓"), pathStyle.Render(result.OutputPath))
	return nil
}

func runImport(spec string, cfg *config.Config) error {
	searchDirs := cfg.Sessions.SearchDirs
	if len(searchDirs) == 0 {
		searchDirs = session.DefaultSearchDirs()
	}

	sourcePath, err := session.Resolve(spec, searchDirs)
	if err != nil {
		return err
	}
	fmt.Printf("Found: %s\n", pathStyle.Render(sourcePath))
	fmt.Printf("Converting and redacting: %s\n", filepath.Base(sourcePath))

	result, err := convert.ImportFile(sourcePath, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s Converted %d entries\n", successStyle.Render("✓"), result.Entries)
	fmt.Printf("%s Output written to: %s\n", successStyle.Render("✓"), pathStyle.Render(result.OutputPath))
	fmt.Printf("\n%s Session imported successfully!\n", successStyle.Render("✓"))
	fmt.Printf("  MD: %s\n", result.OutputPath)
	return nil
}
