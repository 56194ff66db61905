package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rogersnm/opbatch/internal/markdown"
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/rogersnm/opbatch/internal/store"
	"github.com/rogersnm/opbatch/internal/units"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <source> [file]",
	Short: "Replace a batch with operations from a JSON or markdown file",
	Long: `Reads operations from source, a JSON file holding one operation or an array
of them, or a batch markdown file (.md). Use - to read JSON from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := readOperations(cmd, args[0])
		if err != nil {
			return err
		}
		path, err := resolveBatch(args, 1)
		if err != nil {
			return err
		}

		s := store.New()
		if appendOps, _ := cmd.Flags().GetBool("append"); appendOps {
			if _, statErr := os.Stat(path); statErr == nil {
				if s, err = store.Load(path); err != nil {
					return err
				}
			}
			ops = append(s.Operations(), ops...)
		}
		s.ImportOperations(ops)
		if err := saveBatch(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d operation(s) into %s\n", s.Len(), path)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a batch's operations as JSON or markdown",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}

		var data []byte
		switch format, _ := cmd.Flags().GetString("format"); format {
		case "json":
			data, err = json.MarshalIndent(s.Operations(), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding operations: %w", err)
			}
			data = append(data, '\n')
		case "markdown", "md":
			text, err := markdown.Format(s.Operations(), now())
			if err != nil {
				return err
			}
			data = []byte(text)
		default:
			return fmt.Errorf("unknown format %q (use json or markdown)", format)
		}

		if output, _ := cmd.Flags().GetString("output"); output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d operation(s) to %s\n", s.Len(), output)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <value>",
	Short: "Convert a length between pt, px and emu",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[0])
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		dpi := cfg.DPI
		if cmd.Flags().Changed("dpi") {
			dpi, _ = cmd.Flags().GetFloat64("dpi")
		}

		result, ok := units.Convert(value, from, to, dpi)
		if !ok {
			return fmt.Errorf("cannot convert %s to %s (units are pt, px and emu)", from, to)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", strconv.FormatFloat(result, 'f', -1, 64), strings.ToLower(to))
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("append", false, "append to the batch instead of replacing it")
	exportCmd.Flags().String("format", "json", "output format: json or markdown")
	exportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	convertCmd.Flags().String("from", "pt", "source unit: pt, px or emu")
	convertCmd.Flags().String("to", "px", "target unit: pt, px or emu")
	convertCmd.Flags().Float64("dpi", units.DefaultDPI, "pixel density (defaults to the configured dpi)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(convertCmd)
}

// readOperations loads operations from a JSON file, a batch markdown file or
// stdin ("-").
func readOperations(cmd *cobra.Command, source string) ([]model.Operation, error) {
	var data []byte
	var err error
	if source == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".md", ".markdown":
		res := markdown.Parse(string(data))
		if err := res.Err(); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}
		return res.Operations, nil
	}
	ops, err := markdown.DecodeOperations(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	return ops, nil
}
