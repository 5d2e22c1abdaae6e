// Command pclinfo reports the versions and backend of the pcl bindings and,
// given PCD files, summarises their contents.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/pclgo/pcl-go/pkg/pcl"
	"github.com/pclgo/pcl-go/pkg/pcl/logging"
)

func main() {
	debug := flag.Bool("debug", false, "log binding diagnostics to stderr")
	flag.Parse()

	if *debug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		pcl.SetLogger(logging.New(slog.New(h)))
	}

	log.Printf("pcl-go version: %s", pcl.WrapperVersion())
	log.Printf("pcl native: %s (backend %s)", pcl.NativeVersion(), pcl.Backend())

	failed := false
	for _, path := range flag.Args() {
		if err := summarize(path); err != nil {
			if errors.Is(err, pcl.ErrNotBuilt) {
				fmt.Printf("library unavailable: %v\n", err)
				return
			}
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func summarize(path string) error {
	c, err := pcl.LoadPointCloud[pcl.PointXYZ](path)
	if err != nil {
		return err
	}
	defer c.Release()

	n, err := c.Len()
	if err != nil {
		return err
	}
	w, err := c.Width()
	if err != nil {
		return err
	}
	h, err := c.Height()
	if err != nil {
		return err
	}
	dense, err := c.IsDense()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d points (%dx%d) dense=%t\n", path, n, w, h, dense)

	var centroid [4]float32
	switch used, err := pcl.ComputeCentroid[pcl.PointXYZ](c, &centroid); {
	case errors.Is(err, pcl.ErrNoValidPoints):
		fmt.Printf("  centroid: none\n")
	case err != nil:
		return err
	default:
		fmt.Printf("  centroid: (%g, %g, %g) from %d points\n", centroid[0], centroid[1], centroid[2], used)
	}
	return nil
}
