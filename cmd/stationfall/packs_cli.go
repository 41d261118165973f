package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/appengine-ltd/stationfall/internal/packs"
)

// runPackCommand serves the -pack flag for both client builds. "list" prints
// the catalogue; any other value is treated as a pack id to download.
func runPackCommand(arg string) int {
	dir := packs.DefaultDir()

	if strings.EqualFold(strings.TrimSpace(arg), "list") {
		fmt.Println("Available content packs:")
		for _, pack := range packs.Available() {
			marker := " "
			if packs.Installed(dir, pack) {
				marker = "*"
			}
			fmt.Printf("  %s %-14s %s\n", marker, pack.ID, pack.Name)
			fmt.Printf("      %s\n", pack.Blurb)
		}
		fmt.Printf("Installed packs are marked * and live in %s.\n", dir)
		return 0
	}

	pack, ok := packs.ByID(arg)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown pack %q; run -pack list for the catalogue\n", arg)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fmt.Printf("Downloading %s...\n", pack.Name)
	err := packs.Download(ctx, dir, pack, func(p packs.Progress) {
		if p.TotalBytes > 0 {
			fmt.Printf("\r  %d / %d bytes", p.DownloadedBytes, p.TotalBytes)
		} else {
			fmt.Printf("\r  %d bytes", p.DownloadedBytes)
		}
	})
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "download failed: %v\n", err)
		return 1
	}

	fmt.Printf("Installed %s to %s.\n", pack.FileName, dir)
	return 0
}
