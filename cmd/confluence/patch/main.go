package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-confluence/cmd/confluence/internal/bootstrap"
	pagescmd "github.com/goliatone/go-confluence/internal/commands/pages"
	"github.com/joho/godotenv"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	_ = godotenv.Load()
	if err := runPatch(os.Args[1:]); err != nil {
		log.Fatalf("confluence patch: %v", err)
	}
}

func runPatch(args []string) error {
	fs := flag.NewFlagSet("confluence-patch", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link to patch")
	oldFragment := fs.String("old", "", "Exact fragment to replace")
	oldFile := fs.String("old-file", "", "File holding the exact fragment to replace")
	newFragment := fs.String("new", "", "Replacement fragment; empty deletes the match")
	newFile := fs.String("new-file", "", "File holding the replacement fragment")

	if err := fs.Parse(args); err != nil {
		return err
	}

	oldValue, err := fragmentValue(*oldFragment, *oldFile)
	if err != nil {
		return fmt.Errorf("read old fragment: %w", err)
	}
	if oldValue == "" {
		return fmt.Errorf("old fragment is required; use -old or -old-file")
	}
	newValue, err := fragmentValue(*newFragment, *newFile)
	if err != nil {
		return fmt.Errorf("read new fragment: %w", err)
	}

	module, err := moduleBuilder(bootstrap.Options{ProjectFile: *project})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Editor == nil {
		return fmt.Errorf("page editor not configured")
	}
	defer module.Close()

	handler := pagescmd.NewPatchPageHandler(module.Editor, module.Logger, pagescmd.FeatureGates{
		CommandsEnabled: module.CommandsEnabled,
	})
	cmd := pagescmd.PatchPageCommand{
		Reference:   *reference,
		OldFragment: oldValue,
		NewFragment: newValue,
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute patch command: %w", err)
	}

	fmt.Fprintln(os.Stdout, "patch applied")
	return nil
}

// fragmentValue resolves a fragment flag pair; the file wins when both are set.
func fragmentValue(inline, path string) (string, error) {
	if path == "" {
		return inline, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
