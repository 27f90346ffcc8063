package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/crispvm/go-chip8/internal/chip8"
	"github.com/crispvm/go-chip8/internal/runner"
	"github.com/crispvm/go-chip8/pkg/display"
	"github.com/crispvm/go-chip8/pkg/display/event"
	_ "github.com/crispvm/go-chip8/pkg/display/fyne"
	_ "github.com/crispvm/go-chip8/pkg/display/sdl"
	_ "github.com/crispvm/go-chip8/pkg/display/web"
	"github.com/crispvm/go-chip8/pkg/log"
	"github.com/crispvm/go-chip8/pkg/perf"
	"github.com/crispvm/go-chip8/pkg/utils"
)

func main() {
	go func() {
		_ = http.ListenAndServe("localhost:6060", nil)
	}()

	logger := log.New()

	if display.InstalledDrivers == nil {
		logger.Fatal("no display drivers installed")
	}

	romFile := flag.String("rom", "", "The ROM file to load")
	driverName := flag.String("driver", "auto", "The display driver to use")
	plotFile := flag.String("frametime-plot", "", "Write a frame time plot to the given PNG file on exit")
	display.RegisterFlags()
	flag.Parse()

	driver := display.GetDriver(*driverName)
	if driver == nil {
		logger.Fatal("unknown display driver: " + *driverName)
	}

	if *romFile == "" {
		file, err := utils.AskForFile("Open ROM", "")
		if err != nil {
			logger.Fatal("no ROM file provided")
		}
		*romFile = file
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal("failed to load ROM: " + err.Error())
	}
	logger.Infof("loaded %s (%d bytes, %016x)", *romFile, len(rom), xxhash.Sum64(rom))

	vm := chip8.New(chip8.WithLogger(logger))
	if err := vm.LoadProgram(rom); err != nil {
		logger.Fatal("failed to load program: " + err.Error())
	}

	title := strings.TrimSuffix(filepath.Base(*romFile), filepath.Ext(*romFile))
	recorder := perf.NewRecorder(600)
	r := runner.New(vm,
		runner.WithLogger(logger),
		runner.WithTitle(title),
		runner.WithRecorder(recorder),
	)
	driver.Initialize(r)

	fb := make(chan []byte, 60)
	events := make(chan event.Event, 60)
	inputs := make(chan display.Input, 16)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := r.Start(ctx, fb, events, inputs); err != nil {
			logger.Errorf("frame loop stopped: %v", err)
		}
	}()

	if err := driver.Start(fb, events, inputs); err != nil {
		logger.Errorf("display driver stopped: %v", err)
	}
	cancel()

	if *plotFile != "" {
		f, err := os.Create(*plotFile)
		if err != nil {
			logger.Errorf("failed to create frame time plot: %v", err)
		} else {
			if err := recorder.WritePlot(f); err != nil {
				logger.Errorf("failed to write frame time plot: %v", err)
			}
			_ = f.Close()
		}
	}

	if err := driver.Stop(); err != nil {
		logger.Errorf("failed to stop display driver: %v", err)
	}
}
