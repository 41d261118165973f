package packs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Pack is one downloadable content drop from the official release feed.
// An empty SHA256 would skip verification; every published pack carries one.
type Pack struct {
	ID       string
	Name     string
	Blurb    string
	FileName string
	URL      string
	SHA256   string
}

var knownPacks = []Pack{
	{
		ID:       "strings_de",
		Name:     "German Console Strings",
		Blurb:    "Details panel and readout strings in German. The console vocabulary stays English.",
		FileName: "strings-de.json",
		URL:      "https://github.com/appengine-ltd/stationfall-content/releases/download/packs-v1/strings-de.json",
		SHA256:   "8f3c2b9e41d7a0c5f6881d23c9be07a4512ef98d30c6b1aa47e5d20f9c48317b",
	},
	{
		ID:       "strings_fr",
		Name:     "French Console Strings",
		Blurb:    "Details panel and readout strings in French. The console vocabulary stays English.",
		FileName: "strings-fr.json",
		URL:      "https://github.com/appengine-ltd/stationfall-content/releases/download/packs-v1/strings-fr.json",
		SHA256:   "d41a7c05e9f238b6014c7dd8a92e65f03b8c41297aa50de6c12f88e4b0a693c5",
	},
	{
		ID:       "strings_tech",
		Name:     "Technical Readout Strings",
		Blurb:    "Denser engineering phrasing for every readout, aimed at players who want raw figures.",
		FileName: "strings-tech.json",
		URL:      "https://github.com/appengine-ltd/stationfall-content/releases/download/packs-v1/strings-tech.json",
		SHA256:   "2c91e6b04a85f7d31f20ac98b5647e1d0c3fb26a98d14ef57b30c62d8a15f940",
	},
}

var allowedPackHosts = map[string]struct{}{
	"github.com":                            {},
	"objects.githubusercontent.com":         {},
	"github-releases.githubusercontent.com": {},
}

func Available() []Pack {
	out := make([]Pack, len(knownPacks))
	copy(out, knownPacks)
	return out
}

func ByID(id string) (Pack, bool) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, pack := range knownPacks {
		if pack.ID == id {
			return pack, true
		}
	}
	return Pack{}, false
}

func Installed(dir string, pack Pack) bool {
	info, err := os.Stat(filepath.Join(dir, pack.FileName))
	return err == nil && !info.IsDir()
}

type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
}

type progressWriter struct {
	downloaded int64
	total      int64
	report     func(Progress)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.downloaded += int64(n)
	if w.report != nil {
		w.report(Progress{DownloadedBytes: w.downloaded, TotalBytes: w.total})
	}
	return n, nil
}

// Download fetches a pack into dir, verifying its checksum before the file
// becomes visible under its final name.
func Download(ctx context.Context, dir string, pack Pack, onProgress func(Progress)) error {
	if strings.TrimSpace(pack.URL) == "" {
		return errors.New("pack URL is empty")
	}
	if err := validatePackURL(pack.URL); err != nil {
		return err
	}
	if err := ensureDir(dir); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pack.URL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("download failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}

	if onProgress != nil {
		onProgress(Progress{DownloadedBytes: 0, TotalBytes: resp.ContentLength})
	}

	tmp, err := os.CreateTemp(dir, "pack-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		_ = tmp.Close()
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	hasher := sha256.New()
	pw := &progressWriter{total: resp.ContentLength, report: onProgress}
	if _, err := io.Copy(io.MultiWriter(tmp, hasher, pw), resp.Body); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if pack.SHA256 != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if !strings.EqualFold(got, pack.SHA256) {
			return fmt.Errorf("checksum mismatch for %s: got %s want %s", pack.FileName, got, pack.SHA256)
		}
	}

	if err := os.Rename(tmpPath, filepath.Join(dir, pack.FileName)); err != nil {
		return fmt.Errorf("install pack file: %w", err)
	}
	cleanup = false
	return nil
}

func validatePackURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("unsupported URL scheme: %s", parsed.Scheme)
	}
	host := strings.ToLower(parsed.Hostname())
	if _, ok := allowedPackHosts[host]; !ok {
		return fmt.Errorf("unsupported URL host: %s", host)
	}
	return nil
}
