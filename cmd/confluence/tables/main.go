package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-confluence/cmd/confluence/internal/bootstrap"
	tablescmd "github.com/goliatone/go-confluence/internal/commands/tables"
	"github.com/goliatone/go-confluence/pkg/interfaces"
	"github.com/joho/godotenv"
)

const subcommands = "list, update-cell, insert-row, insert-column, delete-row or delete-column"

type cellUpdater interface {
	Execute(ctx context.Context, msg tablescmd.UpdateCellCommand) error
}

type rowInserter interface {
	Execute(ctx context.Context, msg tablescmd.InsertRowCommand) error
}

type columnInserter interface {
	Execute(ctx context.Context, msg tablescmd.InsertColumnCommand) error
}

type rowDeleter interface {
	Execute(ctx context.Context, msg tablescmd.DeleteRowCommand) error
}

type columnDeleter interface {
	Execute(ctx context.Context, msg tablescmd.DeleteColumnCommand) error
}

type tableLister interface {
	ListTables(ctx context.Context, reference string) ([]interfaces.TableSummary, error)
}

type handlerSet struct {
	update    cellUpdater
	insertRow rowInserter
	insertCol columnInserter
	deleteRow rowDeleter
	deleteCol columnDeleter
}

type moduleOptions struct {
	project string
}

type moduleResources struct {
	module   *bootstrap.Module
	lister   tableLister
	handlers handlerSet
}

func (r *moduleResources) close() {
	if r == nil || r.module == nil {
		return
	}
	_ = r.module.Close()
}

var moduleBuilder = buildResources

func buildResources(opts moduleOptions) (*moduleResources, error) {
	module, err := bootstrap.BuildModule(bootstrap.Options{ProjectFile: opts.project})
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	gates := tablescmd.FeatureGates{CommandsEnabled: module.CommandsEnabled}
	return &moduleResources{
		module: module,
		lister: module.Editor,
		handlers: handlerSet{
			update:    tablescmd.NewUpdateCellHandler(module.Editor, module.Logger, gates),
			insertRow: tablescmd.NewInsertRowHandler(module.Editor, module.Logger, gates),
			insertCol: tablescmd.NewInsertColumnHandler(module.Editor, module.Logger, gates),
			deleteRow: tablescmd.NewDeleteRowHandler(module.Editor, module.Logger, gates),
			deleteCol: tablescmd.NewDeleteColumnHandler(module.Editor, module.Logger, gates),
		},
	}, nil
}

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("confluence tables: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand: expected %s", subcommands)
	}
	switch args[0] {
	case "list":
		return runList(args[1:])
	case "update-cell":
		return runUpdateCell(args[1:])
	case "insert-row":
		return runInsertRow(args[1:])
	case "insert-column":
		return runInsertColumn(args[1:])
	case "delete-row":
		return runDeleteRow(args[1:])
	case "delete-column":
		return runDeleteColumn(args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q: expected %s", args[0], subcommands)
	}
}

func runList(args []string) error {
	fs := flag.NewFlagSet("tables-list", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the tables")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*reference) == "" {
		return fmt.Errorf("reference is required")
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.lister == nil {
		return fmt.Errorf("table lister not configured")
	}

	summaries, err := resources.lister.ListTables(context.Background(), *reference)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(os.Stdout, "no tables found")
		return nil
	}
	for _, summary := range summaries {
		fmt.Fprintf(os.Stdout, "table %d: %d rows x %d columns\n", summary.Index, summary.RowCount, summary.ColCount)
		if len(summary.HeaderRow) > 0 {
			fmt.Fprintf(os.Stdout, "  header: %s\n", strings.Join(summary.HeaderRow, " | "))
		}
		if summary.Preview != "" {
			fmt.Fprintf(os.Stdout, "  preview: %s\n", summary.Preview)
		}
	}
	return nil
}

func runUpdateCell(args []string) error {
	fs := flag.NewFlagSet("tables-update-cell", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the table")
	table := fs.Int("table", 0, "Table index in document order, starting at zero")
	row := fs.Int("row", 0, "Row index inside the table, starting at zero")
	column := fs.Int("col", 0, "Column index inside the row, starting at zero")
	content := fs.String("content", "", "New cell content; markdown inline syntax is converted")
	appendContent := fs.Bool("append", false, "Keep the current content and add the new content after it")
	style := fs.String("style", "", "Inline CSS style applied to the cell")
	highlight := fs.String("highlight", "", "Named background highlight applied to the cell")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.handlers.update == nil {
		return fmt.Errorf("update-cell handler not configured")
	}

	msg := tablescmd.UpdateCellCommand{
		Reference: *reference,
		Table:     *table,
		Row:       *row,
		Column:    *column,
		Content:   *content,
		Append:    *appendContent,
		Style:     *style,
		Highlight: *highlight,
	}
	if err := resources.handlers.update.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute update-cell command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "cell updated")
	return nil
}

func runInsertRow(args []string) error {
	fs := flag.NewFlagSet("tables-insert-row", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the table")
	table := fs.Int("table", 0, "Table index in document order, starting at zero")
	position := fs.Int("position", 0, "Row index the new row is inserted before")
	values := fs.String("values", "", "Comma separated cell values, one per column")
	header := fs.Bool("header", false, "Render the new row with header cells")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.handlers.insertRow == nil {
		return fmt.Errorf("insert-row handler not configured")
	}

	msg := tablescmd.InsertRowCommand{
		Reference: *reference,
		Table:     *table,
		Position:  *position,
		Values:    bootstrap.SplitCells(*values),
		Header:    *header,
	}
	if err := resources.handlers.insertRow.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute insert-row command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "row inserted")
	return nil
}

func runInsertColumn(args []string) error {
	fs := flag.NewFlagSet("tables-insert-column", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the table")
	table := fs.Int("table", 0, "Table index in document order, starting at zero")
	position := fs.Int("position", 0, "Column index the new column is inserted before")
	name := fs.String("name", "", "Header cell content for the new column")
	defaultValue := fs.String("default", "", "Cell content for the new column in non-header rows")
	headerStyle := fs.String("header-style", "", "Inline CSS style applied to the new header cell")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.handlers.insertCol == nil {
		return fmt.Errorf("insert-column handler not configured")
	}

	msg := tablescmd.InsertColumnCommand{
		Reference:    *reference,
		Table:        *table,
		Position:     *position,
		Name:         *name,
		DefaultValue: *defaultValue,
		HeaderStyle:  *headerStyle,
	}
	if err := resources.handlers.insertCol.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute insert-column command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "column inserted")
	return nil
}

func runDeleteRow(args []string) error {
	fs := flag.NewFlagSet("tables-delete-row", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the table")
	table := fs.Int("table", 0, "Table index in document order, starting at zero")
	row := fs.Int("row", 0, "Row index to remove, starting at zero")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.handlers.deleteRow == nil {
		return fmt.Errorf("delete-row handler not configured")
	}

	msg := tablescmd.DeleteRowCommand{
		Reference: *reference,
		Table:     *table,
		Row:       *row,
	}
	if err := resources.handlers.deleteRow.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute delete-row command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "row deleted")
	return nil
}

func runDeleteColumn(args []string) error {
	fs := flag.NewFlagSet("tables-delete-column", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link carrying the table")
	table := fs.Int("table", 0, "Table index in document order, starting at zero")
	column := fs.Int("col", 0, "Column index to remove, starting at zero")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resources, err := moduleBuilder(moduleOptions{project: *project})
	if err != nil {
		return err
	}
	defer resources.close()
	if resources == nil || resources.handlers.deleteCol == nil {
		return fmt.Errorf("delete-column handler not configured")
	}

	msg := tablescmd.DeleteColumnCommand{
		Reference: *reference,
		Table:     *table,
		Column:    *column,
	}
	if err := resources.handlers.deleteCol.Execute(context.Background(), msg); err != nil {
		return fmt.Errorf("execute delete-column command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "column deleted")
	return nil
}
