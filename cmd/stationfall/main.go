//go:build cgo
// +build cgo

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/appengine-ltd/stationfall/internal/gui"
)

// version, commit, date are injected at build time (see .goreleaser.yaml).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		noUpdate    bool
		packArg     string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&noUpdate, "no-update", false, "disable update checks")
	flag.StringVar(&packArg, "pack", "", "manage content packs: list, or a pack id to download")
	flag.Parse()

	if showVersion {
		fmt.Printf("Stationfall %s (%s) %s\n", version, commit, date)
		return
	}

	if packArg != "" {
		os.Exit(runPackCommand(packArg))
	}

	app := gui.NewApp(gui.AppConfig{
		Version:  version,
		NoUpdate: noUpdate,
	})

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
