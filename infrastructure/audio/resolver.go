package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Track is a playable audio stream resolved from a search query or URL
type Track struct {
	Title      string
	StreamURL  string
	WebpageURL string
	Duration   time.Duration
}

// CommandRunner runs an external program and returns its standard output
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Resolver turns queries into tracks with yt-dlp
type Resolver struct {
	binary string
	run    CommandRunner
}

// NewResolver creates a resolver using the yt-dlp binary at path
func NewResolver(path string, run CommandRunner) *Resolver {
	if run == nil {
		run = ExecRunner
	}
	return &Resolver{binary: path, run: run}
}

type ytdlpInfo struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	WebpageURL string  `json:"webpage_url"`
	Duration   float64 `json:"duration"`
}

// Resolve returns the first search result for query. URLs are used as-is.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty query")
	}

	target := query
	if !strings.HasPrefix(query, "http://") && !strings.HasPrefix(query, "https://") {
		target = "ytsearch1:" + query
	}

	out, err := r.run(ctx, r.binary,
		"-f", "bestaudio/best",
		"--no-playlist",
		"--no-warnings",
		"-j",
		target,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", query, err)
	}

	line, _, _ := bytes.Cut(bytes.TrimSpace(out), []byte("\n"))
	if len(line) == 0 {
		return nil, fmt.Errorf("no results for %q", query)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(line, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if info.URL == "" {
		return nil, fmt.Errorf("no playable stream for %q", query)
	}

	return &Track{
		Title:      info.Title,
		StreamURL:  info.URL,
		WebpageURL: info.WebpageURL,
		Duration:   time.Duration(info.Duration * float64(time.Second)),
	}, nil
}
