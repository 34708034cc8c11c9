package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-confluence/cmd/confluence/internal/bootstrap"
	"github.com/joho/godotenv"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	_ = godotenv.Load()
	if err := runPull(os.Args[1:]); err != nil {
		log.Fatalf("confluence pull: %v", err)
	}
}

func runPull(args []string) error {
	fs := flag.NewFlagSet("confluence-pull", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	reference := fs.String("reference", "", "Page id, URL, or /display link to pull")
	file := fs.String("file", "", "Target file path; derived from the page title when empty")
	contentDir := fs.String("content-dir", "", "Directory the pulled document is written into")
	database := fs.String("database", "", "Sync ledger DSN overriding the project file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*reference) == "" {
		return fmt.Errorf("reference is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ProjectFile: *project,
		ContentDir:  *contentDir,
		DatabaseDSN: *database,
		Sync:        true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Syncer == nil {
		return fmt.Errorf("document syncer not configured; ensure the sync feature is enabled")
	}
	defer module.Close()

	result, err := module.Syncer.Pull(context.Background(), *reference, *file)
	if err != nil {
		return fmt.Errorf("pull page: %w", err)
	}

	fmt.Fprintf(os.Stdout, "pulled %q (version %d) to %s\n", result.Title, result.Version, result.Path)
	return nil
}
