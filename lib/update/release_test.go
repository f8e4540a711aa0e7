// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/bureau-foundation/yolobox/lib/testutil"
)

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	requests := make(chan *http.Request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r
		fmt.Fprint(w, `{"tag_name":"v1.4.2","name":"yolobox 1.4.2"}`)
	}))
	defer server.Close()

	client := &Client{APIBase: server.URL, Repository: "example/yolobox"}
	latest, err := client.LatestVersion(context.Background())
	if err != nil {
		t.Fatalf("LatestVersion: %v", err)
	}
	if latest != "1.4.2" {
		t.Errorf("latest = %q, want 1.4.2", latest)
	}

	request := testutil.RequireReceive(t, requests, 5*time.Second, "waiting for release request")
	if request.URL.Path != "/repos/example/yolobox/releases/latest" {
		t.Errorf("path = %q", request.URL.Path)
	}
	if got := request.Header.Get("User-Agent"); got != UserAgent {
		t.Errorf("User-Agent = %q, want %q", got, UserAgent)
	}
}

func TestLatestVersionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"rate limited", http.StatusForbidden, `{"message":"rate limit"}`, "unexpected status"},
		{"not json", http.StatusOK, `<html>`, "decoding release"},
		{"missing tag", http.StatusOK, `{"name":"x"}`, "no tag_name"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				fmt.Fprint(w, test.body)
			}))
			defer server.Close()

			client := &Client{APIBase: server.URL, Repository: "example/yolobox"}
			_, err := client.LatestVersion(context.Background())
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, test.wantErr)
			}
		})
	}
}

func TestAssetURL(t *testing.T) {
	t.Parallel()

	client := &Client{DownloadBase: "https://github.com/", Repository: "example/yolobox"}
	want := fmt.Sprintf("https://github.com/example/yolobox/releases/download/v2.0.0/yolobox_%s_%s.tar.gz",
		runtime.GOOS, runtime.GOARCH)
	if got := client.AssetURL("v2.0.0"); got != want {
		t.Errorf("AssetURL = %q, want %q", got, want)
	}
	if got := client.AssetURL("2.0.0"); got != want {
		t.Errorf("AssetURL without v = %q, want %q", got, want)
	}
}

func TestDownloadBinary(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]string{
		"README.md":       "docs",
		"dist/yolobox":    "#!new binary",
		"dist/yolobox.sh": "not this one",
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, AssetName(runtime.GOOS, runtime.GOARCH)) {
			http.NotFound(w, r)
			return
		}
		w.Write(archive)
	}))
	defer server.Close()

	client := &Client{DownloadBase: server.URL, Repository: "example/yolobox"}
	binary, err := client.DownloadBinary(context.Background(), "1.0.0")
	if err != nil {
		t.Fatalf("DownloadBinary: %v", err)
	}
	if string(binary) != "#!new binary" {
		t.Errorf("binary = %q", binary)
	}
}

func TestDownloadOutlivesAPITimeout(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]string{"yolobox": "#!slow binary"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		if strings.Contains(r.URL.Path, "/releases/latest") {
			fmt.Fprint(w, `{"tag_name":"v2.0.0"}`)
			return
		}
		w.Write(archive)
	}))
	defer server.Close()

	client := &Client{
		APIBase:      server.URL,
		DownloadBase: server.URL,
		Repository:   "example/yolobox",
		APITimeout:   50 * time.Millisecond,
	}

	if _, err := client.LatestVersion(context.Background()); err == nil {
		t.Error("LatestVersion: expected the API timeout to expire")
	}

	binary, err := client.DownloadBinary(context.Background(), "2.0.0")
	if err != nil {
		t.Fatalf("DownloadBinary: %v", err)
	}
	if string(binary) != "#!slow binary" {
		t.Errorf("binary = %q", binary)
	}
}

// buildArchive returns a gzip-compressed tar holding the given files.
func buildArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buffer bytes.Buffer
	compressed := gzip.NewWriter(&buffer)
	archive := tar.NewWriter(compressed)
	for name, content := range files {
		header := &tar.Header{Name: name, Mode: 0o755, Size: int64(len(content)), Typeflag: tar.TypeReg}
		if err := archive.WriteHeader(header); err != nil {
			t.Fatalf("WriteHeader: %v", err)
		}
		if _, err := archive.Write([]byte(content)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("closing tar: %v", err)
	}
	if err := compressed.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	return buffer.Bytes()
}
