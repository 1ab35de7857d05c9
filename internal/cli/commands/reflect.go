package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewReflectCommand creates the reflect command.
func NewReflectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reflect <table>",
		Short: "Show a table's schema as read back from the catalog",
		Long: `Reconstruct the table definition from the engine's catalog metadata:
columns with their logical types, nullability, defaults and auto-increment
flags, plus the primary key. Logical types are engine-independent, so the
output is comparable across drivers.`,
		Example: `  # Inspect the archive table
  wxdb reflect archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReflect(cmd, args[0])
		},
	}
}

func runReflect(cmd *cobra.Command, name string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	spec, err := cmdCtx.Conn.ReflectTable(cmd.Context(), name)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Default", "Auto"})

	for _, col := range spec.Columns {
		t.AppendRow(table.Row{
			col.Name,
			string(col.Type),
			yesNo(col.Nullable),
			col.Default,
			yesNo(col.AutoIncrement),
		})
	}

	t.Render()
	if len(spec.PrimaryKey) > 0 {
		_, _ = fmt.Fprintf(w, "Primary key: %s\n", strings.Join(spec.PrimaryKey, ", "))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
