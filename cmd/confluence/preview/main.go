package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/goliatone/go-confluence/markup"
	"github.com/goliatone/go-confluence/sync"
)

func main() {
	var (
		filePath   = flag.String("file", "", "Markdown file to preview")
		renderHTML = flag.Bool("render-html", true, "Render the markdown body into HTML as part of the preview")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	source, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("read markdown file: %v", err)
	}

	doc, err := sync.ParseDocument(*filePath, source)
	if err != nil {
		log.Fatalf("parse markdown document: %v", err)
	}

	fmt.Fprintf(os.Stdout, "Path: %s\nTitle: %s\nSpace: %s\nPage: %s\n\n", doc.Path, doc.Meta.Title, doc.Meta.SpaceKey, doc.Meta.PageID)

	if len(doc.Meta.Custom) > 0 {
		frontmatter, err := json.MarshalIndent(doc.Meta.Custom, "", "  ")
		if err == nil {
			fmt.Fprintf(os.Stdout, "Frontmatter:\n%s\n\n", frontmatter)
		}
	}

	if issues := markup.Lint(doc.Body); len(issues) > 0 {
		fmt.Fprintln(os.Stdout, "Lint:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stdout, "  %s\n", issue)
		}
		fmt.Fprintln(os.Stdout)
	}

	if *renderHTML {
		engine := goldmark.New(goldmark.WithExtensions(extension.GFM))
		var rendered bytes.Buffer
		if err := engine.Convert([]byte(doc.Body), &rendered); err != nil {
			log.Fatalf("render markdown: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Rendered HTML:\n%s\n", rendered.String())
	} else {
		fmt.Fprintf(os.Stdout, "Markdown Body:\n%s\n", doc.Body)
	}
}
