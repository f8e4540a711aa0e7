// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/bureau-foundation/yolobox/lib/version"
)

// Defaults for the public release source.
const (
	DefaultRepository   = "bureau-foundation/yolobox"
	DefaultAPIBase      = "https://api.github.com"
	DefaultDownloadBase = "https://github.com"
	DefaultTimeout      = 5 * time.Second

	// DefaultDownloadTimeout bounds a release archive download, which
	// can take far longer than an API call on a slow link.
	DefaultDownloadTimeout = 10 * time.Minute

	// UserAgent is sent with every request; the GitHub API rejects
	// requests without one.
	UserAgent = "yolobox"

	// BinaryName is the executable name inside release archives.
	BinaryName = "yolobox"
)

// maxAssetSize bounds release downloads.
const maxAssetSize = 256 << 20

// Client talks to the release host.
type Client struct {
	// HTTPClient performs requests. Defaults to http.DefaultClient.
	// Per-request deadlines come from APITimeout and DownloadTimeout, so
	// a client-wide Timeout here also caps downloads.
	HTTPClient *http.Client

	// APITimeout bounds release metadata lookups. Zero means
	// DefaultTimeout.
	APITimeout time.Duration

	// DownloadTimeout bounds a release archive download including the
	// body. Zero means DefaultDownloadTimeout.
	DownloadTimeout time.Duration

	// APIBase is the GitHub API root (overridable for tests).
	APIBase string

	// DownloadBase is the root for release asset downloads.
	DownloadBase string

	// Repository is "owner/name".
	Repository string
}

// NewClient returns a Client for the public yolobox releases.
func NewClient() *Client {
	return &Client{
		HTTPClient:      &http.Client{},
		APIBase:         DefaultAPIBase,
		DownloadBase:    DefaultDownloadBase,
		Repository:      DefaultRepository,
		APITimeout:      DefaultTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
	}
}

type release struct {
	TagName string `json:"tag_name"`
}

// LatestVersion returns the newest release's version with any leading
// "v" removed.
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", strings.TrimRight(c.APIBase, "/"), c.Repository)

	ctx, cancel := context.WithTimeout(ctx, orDefault(c.APITimeout, DefaultTimeout))
	defer cancel()

	response, err := c.get(ctx, url, "application/vnd.github+json")
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	var latest release
	if err := json.NewDecoder(io.LimitReader(response.Body, 1<<20)).Decode(&latest); err != nil {
		return "", fmt.Errorf("decoding release from %s: %w", url, err)
	}
	if latest.TagName == "" {
		return "", fmt.Errorf("release from %s has no tag_name", url)
	}
	return version.Strip(latest.TagName), nil
}

// AssetName returns the release archive name for a platform.
func AssetName(goos, goarch string) string {
	return fmt.Sprintf("%s_%s_%s.tar.gz", BinaryName, goos, goarch)
}

// AssetURL returns the download URL of the archive for releaseVersion
// (without "v") on the current platform.
func (c *Client) AssetURL(releaseVersion string) string {
	return fmt.Sprintf("%s/%s/releases/download/v%s/%s",
		strings.TrimRight(c.DownloadBase, "/"), c.Repository,
		version.Strip(releaseVersion), AssetName(runtime.GOOS, runtime.GOARCH))
}

// DownloadBinary downloads the release archive for releaseVersion and
// returns the extracted yolobox executable.
func (c *Client) DownloadBinary(ctx context.Context, releaseVersion string) ([]byte, error) {
	url := c.AssetURL(releaseVersion)

	ctx, cancel := context.WithTimeout(ctx, orDefault(c.DownloadTimeout, DefaultDownloadTimeout))
	defer cancel()

	response, err := c.get(ctx, url, "application/octet-stream")
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	binary, err := ExtractBinary(io.LimitReader(response.Body, maxAssetSize), BinaryName)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", url, err)
	}
	return binary, nil
}

func (c *Client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	request.Header.Set("User-Agent", UserAgent)
	request.Header.Set("Accept", accept)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, response.Status)
	}
	return response, nil
}

func orDefault(timeout, fallback time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}
	return fallback
}
