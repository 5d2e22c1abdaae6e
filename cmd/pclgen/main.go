// Command pclgen generates the pcl wrapper types and the native constructor
// shim from a YAML class catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pclgo/pcl-go/internal/bindgen"
	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

func main() {
	var (
		catalogPath = flag.String("catalog", "catalog.yaml", "class catalog to read")
		goOut       = flag.String("go", "zz_generated_classes.go", "Go wrapper output")
		cxxOut      = flag.String("cxx", "", "C++ constructor shim output; empty skips it")
		tableOut    = flag.String("table", "", "Go constructor symbol table output; empty skips it")
		verbose     = flag.Bool("v", false, "log each file written")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := logging.New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(context.Background(), log, *catalogPath, *goOut, *cxxOut, *tableOut); err != nil {
		log.Error(context.Background(), "pclgen failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logging.Logger, catalogPath, goOut, cxxOut, tableOut string) error {
	cat, err := bindgen.LoadFile(catalogPath)
	if err != nil {
		return err
	}
	source := filepath.Base(catalogPath)

	outputs := []struct {
		path   string
		render func(*bindgen.Catalog, string) ([]byte, error)
	}{
		{goOut, bindgen.RenderGo},
		{cxxOut, bindgen.RenderCXX},
		{tableOut, bindgen.RenderTable},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		data, err := o.render(cat, source)
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
		log.Debug(ctx, "wrote", "path", o.path, "classes", len(cat.Classes), "bytes", len(data))
	}
	return nil
}
