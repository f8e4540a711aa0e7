// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package update

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// ErrBinaryNotInArchive is returned when a release archive has no
// regular file with the expected name.
var ErrBinaryNotInArchive = errors.New("update: executable not found in archive")

// ExtractBinary reads a gzip-compressed tar stream and returns the
// contents of the first regular file whose base name is name. Archives
// may place the binary at the top level or inside a single directory.
func ExtractBinary(r io.Reader, name string) ([]byte, error) {
	decompressed, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer decompressed.Close()

	archive := tar.NewReader(decompressed)
	for {
		header, err := archive.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s", ErrBinaryNotInArchive, name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}
		if header.Typeflag != tar.TypeReg || path.Base(header.Name) != name {
			continue
		}
		if header.Size > maxAssetSize {
			return nil, fmt.Errorf("%s is %d bytes, larger than the %d byte limit", header.Name, header.Size, maxAssetSize)
		}
		data, err := io.ReadAll(archive)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", header.Name, err)
		}
		return data, nil
	}
}

// ReplaceExecutable atomically replaces the file at target with binary,
// keeping the file executable. The new contents are staged next to
// target so the final rename never crosses a filesystem boundary; a
// running process keeps its old inode.
func ReplaceExecutable(target string, binary []byte) error {
	if len(binary) == 0 {
		return fmt.Errorf("refusing to replace %s with an empty file", target)
	}

	mode := os.FileMode(0o755)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm() | 0o111
	}

	directory := filepath.Dir(target)
	staging, err := os.CreateTemp(directory, "."+filepath.Base(target)+".update-*")
	if err != nil {
		return fmt.Errorf("staging update in %s: %w", directory, err)
	}
	stagingPath := staging.Name()
	cleanup := func() { os.Remove(stagingPath) }

	if _, err := staging.Write(binary); err != nil {
		staging.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", stagingPath, err)
	}
	if err := staging.Chmod(mode); err != nil {
		staging.Close()
		cleanup()
		return fmt.Errorf("setting mode on %s: %w", stagingPath, err)
	}
	if err := staging.Sync(); err != nil {
		staging.Close()
		cleanup()
		return fmt.Errorf("syncing %s: %w", stagingPath, err)
	}
	if err := staging.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing %s: %w", stagingPath, err)
	}
	if err := os.Rename(stagingPath, target); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	return nil
}
