package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var withColumns bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the configured database",
		Example: `  # List table names
  wxdb tables

  # Include each table's columns
  wxdb tables --columns`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd, withColumns)
		},
	}

	cmd.Flags().BoolVar(&withColumns, "columns", false, "Show each table's columns")
	return cmd
}

func runTables(cmd *cobra.Command, withColumns bool) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	names, err := cmdCtx.Conn.Tables(ctx)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(names) == 0 {
		_, _ = fmt.Fprintf(w, "No tables in %q\n", cmdCtx.Conn.DatabaseName())
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	if withColumns {
		t.AppendHeader(table.Row{"Table", "Columns"})
		for _, name := range names {
			cols, err := cmdCtx.Conn.Columns(ctx, name)
			if err != nil {
				return fmt.Errorf("columns of %s: %w", name, err)
			}
			t.AppendRow(table.Row{name, strings.Join(cols, ", ")})
		}
	} else {
		t.AppendHeader(table.Row{"Table"})
		for _, name := range names {
			t.AppendRow(table.Row{name})
		}
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d tables)\n", len(names))
	return nil
}
