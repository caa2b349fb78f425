/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/internal/config"
	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
)

// this program exists just to seed the http cache with tournament files so
// that the first standings request after a round posts is served warm

func main() {
	configPath := flag.String("config", config.DefaultConfigPath(), "config file path")
	listPath := flag.String("list", "", "file with one tournament file url per line")
	delay := flag.Duration("delay", 2*time.Second, "pause between fetches")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("cacheseed: %v", err)
	}

	urls := flag.Args()
	if *listPath != "" {
		f, err := os.Open(*listPath)
		if err != nil {
			log.Fatalf("cacheseed: %v", err)
		}
		listed, err := readURLList(f)
		f.Close()
		if err != nil {
			log.Fatalf("cacheseed: failed to read %v: %v", *listPath, err)
		}
		urls = append(urls, listed...)
	}
	if len(urls) == 0 && settings.URL != "" {
		urls = []string{settings.URL}
	}
	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "usage: %v [--list file] [url...]\n", os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	client := internal.NewCachedHttpClient(ctx, settings.CacheOptions())
	seed(ctx, client, urls, settings.Standings, *delay, os.Stdout)
}

// readURLList reads one url per line; blank lines and lines starting with
// '#' are skipped.
func readURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}

// seed fetches each url through the cached client and reports how many it
// managed to load.
func seed(ctx context.Context, client *http.Client, urls []string, cfg swiss.Config,
	delay time.Duration, out io.Writer) int {

	seeded := 0
	for idx, url := range urls {
		if idx > 0 {
			time.Sleep(delay) // avoid pegging the origin
		}
		ev, err := tdf.GetEvent(ctx, client, tdf.Location{URL: url}, cfg)
		if err != nil {
			// best effort
			log.Printf("cacheseed: %v: %v", url, err)
			continue
		}

		seeded++
		fmt.Fprintf(out, "seeded %v (%d divisions)\n", ev.Name, len(ev.Divisions))
	}
	return seeded
}
