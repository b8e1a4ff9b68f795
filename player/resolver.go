package player

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/playshell/playshell/internal/cache"
	"github.com/playshell/playshell/log"
)

// Media is a playable stream an embedded video id resolved to.
type Media struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

// Resolver turns an embedded video id into a stream.
type Resolver interface {
	Resolve(ctx context.Context, videoID string) (Media, error)
}

// WatchURL returns the page URL of an embedded video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
}

// Passthrough resolves every id to its watch page.
type Passthrough struct{}

func (Passthrough) Resolve(_ context.Context, videoID string) (Media, error) {
	return Media{URL: WatchURL(videoID), Title: videoID}, nil
}

// Cached remembers what Resolver returned for cache.TTL.
type Cached struct {
	Resolver Resolver
	// Namespace separates entries of different resolvers.
	Namespace string
}

func (c Cached) Resolve(ctx context.Context, videoID string) (Media, error) {
	key := cache.Key(c.Namespace, videoID)

	var media Media
	if cache.Read(key, &media) && media.URL != "" {
		log.Debugf("resolve %s: cached", videoID)
		return media, nil
	}

	media, err := c.Resolver.Resolve(ctx, videoID)
	if err != nil {
		return Media{}, err
	}

	if err := cache.Write(key, media); err != nil {
		log.Warnf("resolve %s: cache: %v", videoID, err)
	}

	return media, nil
}

// YTDLP resolves ids by running yt-dlp.
type YTDLP struct {
	Executable string
}

type ytdlpInfo struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
}

func (y YTDLP) Resolve(ctx context.Context, videoID string) (Media, error) {
	executable := y.Executable
	if executable == "" {
		executable = "yt-dlp"
	}

	cmd := exec.CommandContext(ctx, executable,
		"--dump-single-json",
		"--no-playlist",
		"--format", "best",
		"--",
		WatchURL(videoID),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.Warnf("yt-dlp %s: %s", videoID, strings.TrimSpace(stderr.String()))
		return Media{}, fmt.Errorf("resolve %s: %w", videoID, err)
	}

	var info ytdlpInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return Media{}, fmt.Errorf("resolve %s: parse: %w", videoID, err)
	}

	if info.URL == "" {
		return Media{}, fmt.Errorf("resolve %s: no stream url", videoID)
	}

	return Media{URL: info.URL, Title: info.Title, Duration: info.Duration}, nil
}
