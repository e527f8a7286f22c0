// Command fieldscript runs a JavaScript file against a demo field canvas,
// exposing the scripting surface (getField, getPage, app.alert) and printing
// the resulting field state.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/printlab/fieldkit/config"
	"github.com/printlab/fieldkit/document"
	"github.com/printlab/fieldkit/field"
	"github.com/printlab/fieldkit/observability"
	"github.com/printlab/fieldkit/script"
	"github.com/printlab/fieldkit/scripting"
)

func main() {
	cfgPath := flag.String("config", "", "path to a fieldkit.yaml config file")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: fieldscript [-config fieldkit.yaml] <script.js>")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := observability.NewSlog(observability.SlogOptions{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})

	doc := document.New(document.PageGeometry{
		TrimW: cfg.Page.TrimWidth,
		TrimH: cfg.Page.TrimHeight,
		Bleed: cfg.Page.Bleed,
	}, document.WithLogger(logger))
	if err := seed(doc); err != nil {
		fmt.Fprintf(os.Stderr, "seed document: %v\n", err)
		os.Exit(1)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read script: %v\n", err)
		os.Exit(1)
	}

	engine := scripting.NewEngine()
	if err := engine.RegisterCanvas(script.NewAdapter(doc, logger)); err != nil {
		fmt.Fprintf(os.Stderr, "register canvas: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ScriptTimeout())
	defer cancel()
	result, err := engine.Execute(ctx, string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "script: %v\n", err)
		os.Exit(1)
	}
	if result != nil {
		fmt.Printf("result: %v\n", result)
	}

	fmt.Println("fields:")
	for _, f := range doc.Fields() {
		b := f.Base()
		fmt.Printf("  %-8s %-16q page=%d z=%d at (%.1f, %.1f) %gx%g rot=%g issues=%v\n",
			f.FieldType(), b.Info.Name, b.Area.Page, b.Area.ZIndex,
			b.Area.X, b.Area.Y, b.Area.W, b.Area.H, b.Area.Rotation,
			b.Issues.HasPositionIssues)
	}
	if undo := doc.UndoLabels(); len(undo) > 0 {
		fmt.Printf("undo checkpoints: %d\n", len(undo))
	}
}

// seed places a small spread so scripts have something to work with.
func seed(doc *document.Document) error {
	headline := field.NewTextField()
	headline.Info.Name = "headline"
	headline.Area = field.Area{X: 60, Y: 40, W: 480, H: 80}
	headline.Content = "Spring Catalog"

	photo := field.NewImageField()
	photo.Info.Name = "photo"
	photo.Area = field.Area{X: 60, Y: 140, W: 300, H: 200}
	photo.Source = "assets/cover.jpg"

	divider := field.NewPathField()
	divider.Info.Name = "divider"
	divider.Area = field.Area{X: 60, Y: 360, W: 480, H: 2}
	divider.Data = "M 0 0 L 480 0"

	for _, f := range []field.Field{headline, photo, divider} {
		if err := doc.AddField(f, 1, field.SubPageLeft); err != nil {
			return err
		}
	}
	return nil
}
