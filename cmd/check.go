package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/rogersnm/opbatch/internal/dag"
	"github.com/rogersnm/opbatch/internal/logging"
	"github.com/rogersnm/opbatch/internal/markdown"
	"github.com/rogersnm/opbatch/internal/store"
	"github.com/rogersnm/opbatch/internal/validate"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a batch and print the report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		done := logging.LogOperationStart(logging.GetLogger("cli"), "validate")
		defer done()

		_, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		r := s.Revalidate(validator())
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(r); err != nil {
				return err
			}
		} else {
			fmt.Fprint(out, markdown.RenderReport(r))
		}

		if !r.Valid {
			return fmt.Errorf("batch is invalid: %w", r.Err())
		}
		if cfg.Strict && r.State() == validate.StateWarning {
			return fmt.Errorf("batch has %d warning(s) and strict mode is on", len(r.Warnings))
		}
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <object-id> [file]",
	Short: "Highlight the operation that creates or edits an object",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 1)
		if err != nil {
			return err
		}
		objectID := args[0]
		i, _, ok := s.OperationFor(objectID)
		if !ok {
			return fmt.Errorf("no operation creates or references %q", objectID)
		}

		// An operation keyed by the object selects both views; otherwise the
		// row and the preview element differ.
		if key := validate.OperationKeys(s.Operations())[i]; key == objectID {
			s.SyncSelection(store.SourceElement, objectID)
		} else {
			s.SelectByIDs(key, objectID)
		}

		s.Revalidate(validator())
		sel := s.Selection()
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderField("Selected", fmt.Sprintf("operation %q, element %q", sel.OperationID, sel.ElementID)))
		rows := markdown.OperationRows(s.Operations(), s.ValidationErrors(), sel.OperationID)
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderOperationTable(rows))
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Show which operations use objects other operations create",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 0)
		if err != nil {
			return err
		}
		g := dag.Build(s.Operations())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, dag.RenderASCII(g))

		if err := g.ValidateAcyclic(); err != nil {
			return err
		}
		if !g.InOrder() {
			order, err := g.TopologicalSort()
			if err != nil {
				return err
			}
			labels := make([]string, len(order))
			for i, n := range order {
				labels[i] = dag.Label(n)
			}
			fmt.Fprintf(out, "\nSome operations use objects before they are created. Suggested order: %s\n", strings.Join(labels, ", "))
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query> [file]",
	Short: "Search operations by kind, description, object ID or payload",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := loadBatch(args, 1)
		if err != nil {
			return err
		}
		results := s.Search(args[0])
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}

		grouped := map[string][]store.SearchResult{}
		for _, r := range results {
			grouped[string(r.Kind)] = append(grouped[string(r.Kind)], r)
		}
		kinds := make([]string, 0, len(grouped))
		for k := range grouped {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)

		for _, kind := range kinds {
			fmt.Fprintf(out, "\n%s:\n", kind)
			for _, r := range grouped[kind] {
				fmt.Fprintf(out, "  %s  %s\n", dag.Label(r.Index), r.Description)
				if r.Snippet != "" {
					fmt.Fprintf(out, "    %s\n", r.Snippet)
				}
			}
		}
		fmt.Fprintln(out)
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("json", false, "print the report as JSON")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(searchCmd)
}
