package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-confluence/cmd/confluence/internal/bootstrap"
	synccmd "github.com/goliatone/go-confluence/internal/commands/sync"
	"github.com/joho/godotenv"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	_ = godotenv.Load()
	if err := runPush(os.Args[1:]); err != nil {
		log.Fatalf("confluence push: %v", err)
	}
}

func runPush(args []string) error {
	fs := flag.NewFlagSet("confluence-push", flag.ExitOnError)
	project := fs.String("project", "", "Path to the confluence.json project file")
	contentDir := fs.String("content-dir", "", "Directory holding tracked markdown documents")
	space := fs.String("space", "", "Space key for pages created on first push")
	pattern := fs.String("pattern", "", "Glob pattern applied when discovering markdown documents")
	database := fs.String("database", "", "Sync ledger DSN overriding the project file")
	file := fs.String("file", "", "Single document to push, relative to the content directory")
	force := fs.Bool("force", false, "Push even when the remote version moved since the last sync")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ProjectFile: *project,
		SpaceKey:    *space,
		ContentDir:  *contentDir,
		Pattern:     *pattern,
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

	gates := synccmd.FeatureGates{SyncEnabled: module.SyncEnabled}
	ctx := context.Background()

	if *file != "" {
		handler := synccmd.NewPushDocumentHandler(module.Syncer, module.Logger, gates)
		if err := handler.Execute(ctx, synccmd.PushDocumentCommand{Path: *file, Force: *force}); err != nil {
			return fmt.Errorf("execute push command: %w", err)
		}
	} else {
		handler := synccmd.NewPushDirectoryHandler(module.Syncer, module.Logger, gates)
		if err := handler.Execute(ctx, synccmd.PushDirectoryCommand{Force: *force}); err != nil {
			return fmt.Errorf("execute push command: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, "push completed")
	return nil
}
