package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/opbatch/internal/config"
	"github.com/rogersnm/opbatch/internal/id"
	"github.com/rogersnm/opbatch/internal/markdown"
	"github.com/rogersnm/opbatch/internal/repofile"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [file]",
	Short: "Make a batch the default for commands run below the current directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		var batch string
		if len(args) == 1 {
			batch = args[0]
		} else {
			matches, _ := filepath.Glob(filepath.Join(cwd, "*.md"))
			if len(matches) == 0 {
				return fmt.Errorf("no markdown files here; create a batch first with: opbatch new <file>")
			}
			opts := make([]huh.Option[string], len(matches))
			for i, m := range matches {
				opts[i] = huh.NewOption(filepath.Base(m), m)
			}
			if err := huh.NewSelect[string]().
				Title("Select a batch").
				Options(opts...).
				Value(&batch).
				Run(); err != nil {
				return fmt.Errorf("selection cancelled")
			}
		}

		abs, err := filepath.Abs(batch)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("batch %s not found", batch)
		}
		if err := repofile.Write(cwd, abs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Linked %s to %s\n", repofile.FileName, batch)
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove the batch link from the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		p, err := repofile.Read(cwd)
		if err != nil {
			return err
		}
		if p == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No batch linked.")
			return nil
		}
		if err := repofile.Remove(cwd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Unlinked batch.")
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings and where the batch comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, markdown.RenderField("Config", filepath.Join(dataDir, config.FileName)))
		fmt.Fprintln(out, markdown.RenderField("DPI", fmt.Sprintf("%g", cfg.DPI)))
		fmt.Fprintln(out, markdown.RenderField("Page", fmt.Sprintf("%g x %g pt", cfg.PageWidth, cfg.PageHeight)))
		fmt.Fprintln(out, markdown.RenderField("Strict", fmt.Sprintf("%t", cfg.Strict)))

		def := cfg.DefaultBatch
		if def == "" {
			def = "(none)"
		}
		fmt.Fprintln(out, markdown.RenderField("Default", def))

		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		linked, dir, err := repofile.Find(cwd)
		if err != nil {
			return err
		}
		if linked != "" {
			fmt.Fprintln(out, markdown.RenderField("Linked", fmt.Sprintf("%s (from %s)", linked, filepath.Join(dir, repofile.FileName))))
		}
		return nil
	},
}

var configSetDefaultCmd = &cobra.Command{
	Use:   "set-default <file>",
	Short: "Set the batch used when no other batch is given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		cfg.DefaultBatch = abs
		if err := config.Save(dataDir, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default batch set to %s\n", abs)
		return nil
	},
}

var newIDCmd = &cobra.Command{
	Use:   "newid [prefix]",
	Short: "Generate an object ID for a new slide, shape, table or other element",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := id.Shape
		if len(args) == 1 {
			var ok bool
			if p, ok = id.ParsePrefix(args[0]); !ok {
				return fmt.Errorf("unknown prefix %q", args[0])
			}
		}
		objectID, err := id.New(p)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), objectID)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetDefaultCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(newIDCmd)
}
