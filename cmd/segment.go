package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opsim/opsim/sim"
	"github.com/opsim/opsim/sim/metadata"
)

var colorSegments bool

// processView is the printable form of a segmented process.
type processView struct {
	ID         int
	State      sim.ProcessState
	Operations []string
}

// segmentProcesses loads the meta-data file and prints how it splits into
// processes, without running anything.
func segmentProcesses(path string, w io.Writer, color bool) error {
	ops, err := metadata.LoadFile(path)
	if err != nil {
		return err
	}
	procs := sim.SplitProcesses(ops)
	views := make([]processView, 0, len(procs))
	for _, p := range procs {
		v := processView{ID: p.ID, State: p.State}
		for _, op := range p.Operations.Items() {
			v.Operations = append(v.Operations, op.String())
		}
		views = append(views, v)
	}

	printer := pp.New()
	printer.SetColoringEnabled(color)
	fmt.Fprintf(w, "%d operations, %d processes\n", len(ops), len(procs))
	_, err = printer.Fprintln(w, views)
	return err
}

// segmentCmd prints the process segmentation of a meta-data file
var segmentCmd = &cobra.Command{
	Use:   "segment",
	Short: "Show how a meta-data file splits into processes",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		path := metadataPath
		if path == "" && configPath != "" {
			cfg, err := loadConfig(configPath)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			path = cfg.MetadataFile
		}
		if path == "" {
			logrus.Fatalf("Meta-data file not provided. Use --metadata or --config.")
		}
		if err := segmentProcesses(path, os.Stdout, colorSegments); err != nil {
			logrus.Fatalf("Segmentation failed: %v", err)
		}
	},
}

func init() {
	segmentCmd.Flags().BoolVar(&colorSegments, "color", false, "Colorize the process dump")
}
