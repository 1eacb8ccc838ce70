// Command zx48 is the core's command-line entry point: it loads a ROM
// and optional tape image, wires a Machine together, and runs its
// Frame Driver loop. It intentionally has no display or audio output
// of its own (spec.md §1 scopes those out); it exists to exercise the
// core end to end and to host the debug monitor bridge.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/speccygo/zx48/internal/config"
	"github.com/speccygo/zx48/internal/machine"
	"github.com/speccygo/zx48/internal/monitor"
	"github.com/speccygo/zx48/internal/snapshot"
	"github.com/speccygo/zx48/internal/tape"
	"github.com/speccygo/zx48/internal/tape/archive"
	"github.com/speccygo/zx48/internal/tape/format"
	"github.com/speccygo/zx48/pkg/log"
)

func loadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// loadTapeBlocks reads a .tap/.tzx file, extracting it from a .zip/.7z
// archive first if its own extension names one, matching the teacher's
// extension-dispatch idiom in pkg/utils.LoadFile.
func loadTapeBlocks(path string) ([]tape.Block, error) {
	raw, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	name := path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".7z":
		extracted, member, err := archive.Extract(path, raw)
		if err != nil {
			return nil, err
		}
		raw, name = extracted, member
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".tzx":
		blocks, err := format.ParseTZX(raw)
		if err != nil {
			log.New().Errorf("tape parse: %v (playable prefix retained)", err)
		}
		return blocks, nil
	default:
		return format.ParseTAP(raw)
	}
}

func main() {
	romFile := flag.String("rom", "", "16K ROM image to load (required)")
	tapeFile := flag.String("tape", "", "TAP/TZX tape image to insert (optionally inside a .zip/.7z)")
	snapshotFile := flag.String("snapshot", "", ".sna or .z80 snapshot to load instead of starting cold")
	configFile := flag.String("config", "", "optional YAML settings file")
	borderFlag := flag.Int("border", -1, "override the startup border colour (0-7)")
	monitorAddr := flag.String("monitor", "", "address to serve the debug websocket monitor on, e.g. :6060")
	frames := flag.Int("frames", 0, "run exactly this many frames then exit (0 = run forever)")
	flag.Parse()

	logger := log.New()

	if *romFile == "" {
		logger.Errorf("-rom is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Errorf("loading config: %v", err)
		os.Exit(1)
	}
	cfg.OverrideBorderColour(uint8(*borderFlag), *borderFlag >= 0)

	rom, err := loadFile(*romFile)
	if err != nil {
		logger.Errorf("loading ROM: %v", err)
		os.Exit(1)
	}

	m, err := machine.New(rom,
		machine.WithLogger(logger),
		machine.WithBorderColour(cfg.BorderColour),
	)
	if err != nil {
		logger.Errorf("creating machine: %v", err)
		os.Exit(1)
	}

	if *tapeFile != "" {
		blocks, err := loadTapeBlocks(*tapeFile)
		if err != nil {
			logger.Errorf("loading tape: %v", err)
			os.Exit(1)
		}
		m.InsertTape(blocks)
	}

	if *snapshotFile != "" {
		raw, err := loadFile(*snapshotFile)
		if err != nil {
			logger.Errorf("loading snapshot: %v", err)
			os.Exit(1)
		}
		if err := loadSnapshotByExtension(*snapshotFile, raw, m); err != nil {
			logger.Errorf("restoring snapshot: %v", err)
			os.Exit(1)
		}
	}

	var mon *monitor.Monitor
	if *monitorAddr != "" {
		mon = monitor.New(logger)
		go mon.Run()
		http.HandleFunc("/", mon.Handler)
		go func() {
			if err := http.ListenAndServe(*monitorAddr, nil); err != nil {
				logger.Errorf("monitor server: %v", err)
			}
		}()
		logger.Infof("debug monitor listening on %s", *monitorAddr)
	}

	run(m, mon, *frames)
}

func loadSnapshotByExtension(path string, raw []byte, m *machine.Machine) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".z80":
		return snapshot.LoadZ80(raw, m)
	default:
		return snapshot.LoadSNA(raw, m)
	}
}

// run drives the Frame Driver at roughly 50Hz, publishing a monitor
// snapshot after every frame when a monitor is attached. It runs
// forever unless limit is positive.
func run(m *machine.Machine, mon *monitor.Monitor, limit int) {
	ticker := time.NewTicker(time.Second / 50)
	defer ticker.Stop()

	count := 0
	for range ticker.C {
		m.Frame()
		if mon != nil {
			mon.Publish(m.CPU, m.ULA)
		}

		count++
		if limit > 0 && count >= limit {
			fmt.Printf("ran %d frames, %d total T-states\n", count, m.CPU.Tstates)
			return
		}
	}
}
