package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/opbatch/internal/editor"
	"github.com/rogersnm/opbatch/internal/logging"
	"github.com/rogersnm/opbatch/internal/markdown"
	"github.com/rogersnm/opbatch/internal/model"
	"github.com/rogersnm/opbatch/internal/store"
	"github.com/rogersnm/opbatch/internal/validate"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create an empty batch file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(args[0]); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", args[0])
		}
		if err := saveBatch(args[0], store.New()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created empty batch %s\n", args[0])
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Append operations read as JSON from stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		done := logging.LogOperationStart(logging.GetLogger("cli"), "add")
		defer done()

		data, err := readInput(cmd)
		if err != nil {
			return err
		}
		ops, err := markdown.DecodeOperations(data)
		if err != nil {
			return fmt.Errorf("decoding operations: %w", err)
		}

		path, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		for _, op := range ops {
			s.AddOperation(op)
		}
		if err := saveBatch(path, s); err != nil {
			return err
		}

		r := s.Revalidate(validator())
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d operation(s) to %s (%d total, %s)\n",
			len(ops), path, s.Len(), markdown.RenderState(r.State()))
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <index> [file]",
	Short: "Replace an operation with one read as JSON from stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		data, err := readInput(cmd)
		if err != nil {
			return err
		}
		ops, err := markdown.DecodeOperations(data)
		if err != nil {
			return fmt.Errorf("decoding operation: %w", err)
		}
		if len(ops) != 1 {
			return fmt.Errorf("expected exactly one operation, got %d", len(ops))
		}

		path, s, err := loadBatch(args, 1)
		if err != nil {
			return err
		}
		if err := s.UpdateOperation(index, ops[0]); err != nil {
			return indexError(args[0], s.Len(), err)
		}
		if err := saveBatch(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated operation %d: %s\n", index+1, model.Describe(ops[0]))
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <index> [file]",
	Short: "Remove an operation",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		path, s, err := loadBatch(args, 1)
		if err != nil {
			return err
		}
		op, err := s.Operation(index)
		if err != nil {
			return indexError(args[0], s.Len(), err)
		}
		if err := s.RemoveOperation(index); err != nil {
			return indexError(args[0], s.Len(), err)
		}
		if err := saveBatch(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed operation %d: %s\n", index+1, model.Describe(op))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List operations with their validation status",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		s.Revalidate(validator())
		rows := markdown.OperationRows(s.Operations(), s.ValidationErrors(), s.Selection().OperationID)
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderOperationTable(rows))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show the batch as markdown, or a single operation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if n, _ := cmd.Flags().GetInt("op"); n != 0 {
			op, err := s.Operation(n - 1)
			if err != nil {
				return indexError(strconv.Itoa(n), s.Len(), err)
			}
			return printOperation(cmd, n-1, validate.OperationKeys(s.Operations())[n-1], op)
		}

		text, err := markdown.Format(s.Operations(), now())
		if err != nil {
			return err
		}
		if raw, _ := cmd.Flags().GetBool("raw"); raw {
			fmt.Fprint(out, text)
			return nil
		}
		rendered, err := markdown.RenderMarkdown(text)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [file]",
	Short: "Remove every operation from a batch",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			msg := fmt.Sprintf("Remove all %d operation(s) from %s?", s.Len(), path)
			var confirm bool
			if err := huh.NewConfirm().Title(msg).Value(&confirm).Run(); err != nil || !confirm {
				return fmt.Errorf("clear cancelled")
			}
		}
		s.ClearOperations()
		if err := saveBatch(path, s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", path)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit the batch markdown in $EDITOR",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		text, err := markdown.Format(s.Operations(), now())
		if err != nil {
			return err
		}
		edited, err := editor.EditText(text, "opbatch-*.md")
		if err != nil {
			return err
		}

		res := markdown.Parse(edited)
		if err := res.Err(); err != nil {
			for _, e := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), "  "+e)
			}
			return fmt.Errorf("edited batch not saved: %d code block(s) failed to parse", len(res.Errors))
		}
		s.ImportOperations(res.Operations)
		if err := saveBatch(path, s); err != nil {
			return err
		}
		r := s.Revalidate(validator())
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d operation(s) to %s (%s)\n", s.Len(), path, markdown.RenderState(r.State()))
		return nil
	},
}

func init() {
	newCmd.Flags().Bool("force", false, "overwrite an existing file")
	showCmd.Flags().Bool("raw", false, "print the markdown source")
	showCmd.Flags().Int("op", 0, "show only this operation (1-based)")
	clearCmd.Flags().Bool("force", false, "skip confirmation")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(editCmd)
}

// parseIndex converts a 1-based CLI index to a 0-based one.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid operation index %q (indexes start at 1)", arg)
	}
	return n - 1, nil
}

func indexError(arg string, length int, err error) error {
	if errors.Is(err, store.ErrIndexOutOfRange) {
		return fmt.Errorf("no operation %s (batch has %d)", arg, length)
	}
	return err
}

func printOperation(cmd *cobra.Command, index int, key string, op model.Operation) error {
	data, err := markdown.IndentJSON(op)
	if err != nil {
		return err
	}
	fields := []string{
		markdown.RenderField("Description", model.Describe(op)),
		markdown.RenderField("Key", key),
	}
	if created := model.CreatedIDs(op); len(created) > 0 {
		fields = append(fields, markdown.RenderField("Creates", strings.Join(created, ", ")))
	}
	if refs := model.ReferencedIDs(op); len(refs) > 0 {
		fields = append(fields, markdown.RenderField("Uses", strings.Join(refs, ", ")))
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, markdown.RenderEntityHeader(fmt.Sprintf("Operation %d: %s", index+1, op.Kind()), fields))
	fmt.Fprintln(out, string(data))
	return nil
}
