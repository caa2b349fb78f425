/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mikeb26/swiss-standings/internal"
	"github.com/mikeb26/swiss-standings/swiss"
)

// Location names where an event's dataset is published. PairingsURL is
// optional.
type Location struct {
	URL         string
	PairingsURL string
}

// GetEvent fetches the tournament file and, when configured, the pairings
// page concurrently. The tournament file is preferred; the pairings page is
// used only when the file cannot be fetched or parsed.
func GetEvent(ctx context.Context, client *http.Client, loc Location,
	cfg swiss.Config) (*Event, error) {

	if loc.PairingsURL == "" {
		return getEventViaXML(ctx, client, loc.URL, cfg)
	}

	var wg sync.WaitGroup
	var evViaXML, evViaWeb *Event
	var xmlErr, webErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		evViaXML, xmlErr = getEventViaXML(ctx, client, loc.URL, cfg)
	}()
	go func() {
		defer wg.Done()
		evViaWeb, webErr = getEventViaWeb(ctx, client, loc.PairingsURL, cfg)
	}()
	wg.Wait()

	// prefer the tournament file
	if xmlErr != nil {
		if webErr != nil {
			return nil, fmt.Errorf("%w (pairings page: %v)", xmlErr, webErr)
		} // else
		return evViaWeb, nil
	} // else

	return evViaXML, nil
}

func getEventViaXML(ctx context.Context, client *http.Client, url string,
	cfg swiss.Config) (*Event, error) {

	if url == "" {
		return nil, fmt.Errorf("tdf.get: no tournament file url configured")
	}
	data, err := fetch(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch tournament file: %w", err)
	}
	return parseXML(data, cfg)
}

func getEventViaWeb(ctx context.Context, client *http.Client, url string,
	cfg swiss.Config) (*Event, error) {

	data, err := fetch(ctx, client, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch pairings page: %w", err)
	}
	return parseWeb(data, cfg)
}

// fetch gets the document at url using the configured User-Agent.
func fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// LoadFile reads a local dataset. Files ending in .html or .htm are parsed
// as pairings pages, everything else as a tournament file.
func LoadFile(path string, cfg swiss.Config) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tdf.load: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return parseWeb(data, cfg)
	default:
		return parseXML(data, cfg)
	}
}
