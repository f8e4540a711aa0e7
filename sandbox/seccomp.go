// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

// SeccompProfileFileName is the fixed name of the materialized default
// profile inside the temp directory.
const SeccompProfileFileName = "yolobox-seccomp-default.json"

// seccompUnconfined is docker's marker for "no syscall filter".
const seccompUnconfined = "unconfined"

//go:embed seccomp_default.jsonc
var defaultSeccompSource []byte

// DefaultSeccompProfile returns the embedded default profile as plain
// JSON (comments and trailing commas stripped).
func DefaultSeccompProfile() ([]byte, error) {
	profile := jsonc.ToJSON(defaultSeccompSource)
	if !json.Valid(profile) {
		return nil, fmt.Errorf("embedded seccomp profile is not valid JSON")
	}
	return profile, nil
}

// SeccompKind enumerates the seccomp outcomes.
type SeccompKind int

const (
	// SeccompDisabled runs the container unconfined.
	SeccompDisabled SeccompKind = iota

	// SeccompCustom uses a user-supplied profile path.
	SeccompCustom

	// SeccompEmbedded uses the built-in profile written to a temp file.
	SeccompEmbedded
)

func (k SeccompKind) String() string {
	switch k {
	case SeccompDisabled:
		return "disabled"
	case SeccompCustom:
		return "custom"
	case SeccompEmbedded:
		return "embedded-default"
	default:
		return fmt.Sprintf("SeccompKind(%d)", int(k))
	}
}

// SeccompDecision is the resolved syscall-filter choice.
type SeccompDecision struct {
	Kind SeccompKind

	// Value is what follows "seccomp=" on the docker command line.
	Value string

	// Resource is non-nil only for SeccompEmbedded. It must stay alive
	// until the container process has exited.
	Resource *TempResource
}

// Args returns the two docker tokens that encode the decision.
func (d SeccompDecision) Args() []string {
	return []string{"--security-opt", "seccomp=" + d.Value}
}

// TempResource is a file that must outlive the spawned container
// runtime, which reads it by path at start-up.
type TempResource struct {
	Path string

	// RemoveOnClose deletes the file on Close. The default profile uses
	// a shared well-known name, so it is left for OS temp cleanup
	// unless this is set.
	RemoveOnClose bool
}

// Close releases the resource. Call only after the child has exited.
func (r *TempResource) Close() error {
	if r == nil || !r.RemoveOnClose {
		return nil
	}
	if err := os.Remove(r.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ResolveSeccomp decides which seccomp profile to request. spec is a
// profile path, SentinelNone to disable filtering, or empty for the
// embedded default, which is written into tempDir.
//
// A disabled profile yields a WarnSeccompDisabled warning. A missing
// custom profile is a *SeccompProfileNotFoundError, and a failed temp
// file write is a *FilesystemPreparationError.
func ResolveSeccomp(spec string, tempDir string) (SeccompDecision, *Warning, error) {
	switch {
	case strings.EqualFold(spec, SentinelNone):
		return SeccompDecision{Kind: SeccompDisabled, Value: seccompUnconfined}, &Warning{
			Code:    WarnSeccompDisabled,
			Message: "seccomp filtering is DISABLED: the agent can make any syscall the kernel allows",
		}, nil

	case spec != "":
		if _, err := os.Stat(spec); err != nil {
			return SeccompDecision{}, nil, &SeccompProfileNotFoundError{Path: spec, Err: err}
		}
		return SeccompDecision{Kind: SeccompCustom, Value: spec}, nil, nil

	default:
		path, err := materializeDefaultProfile(tempDir)
		if err != nil {
			return SeccompDecision{}, nil, err
		}
		return SeccompDecision{
			Kind:     SeccompEmbedded,
			Value:    path,
			Resource: &TempResource{Path: path},
		}, nil, nil
	}
}

// materializeDefaultProfile writes the embedded profile to
// tempDir/SeccompProfileFileName. The write is skipped when the file
// already holds identical content, since another yolobox run may have a
// container reading it. Otherwise the file is replaced atomically.
func materializeDefaultProfile(tempDir string) (string, error) {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	path := filepath.Join(tempDir, SeccompProfileFileName)

	profile, err := DefaultSeccompProfile()
	if err != nil {
		return "", &FilesystemPreparationError{Op: "encode seccomp profile", Path: path, Err: err}
	}

	if reusableProfile(path, profile) {
		return path, nil
	}

	staging, err := os.CreateTemp(tempDir, SeccompProfileFileName+".*")
	if err != nil {
		return "", &FilesystemPreparationError{Op: "write seccomp profile", Path: path, Err: err}
	}
	stagingPath := staging.Name()

	if _, err := staging.Write(profile); err != nil {
		staging.Close()
		os.Remove(stagingPath)
		return "", &FilesystemPreparationError{Op: "write seccomp profile", Path: path, Err: err}
	}
	if err := staging.Chmod(0o644); err != nil {
		staging.Close()
		os.Remove(stagingPath)
		return "", &FilesystemPreparationError{Op: "write seccomp profile", Path: path, Err: err}
	}
	if err := staging.Close(); err != nil {
		os.Remove(stagingPath)
		return "", &FilesystemPreparationError{Op: "write seccomp profile", Path: path, Err: err}
	}
	// Rename replaces a planted symlink or foreign file at path without
	// following it. A sticky temp directory refuses to replace a file
	// owned by another user.
	if err := os.Rename(stagingPath, path); err != nil {
		os.Remove(stagingPath)
		return "", &FilesystemPreparationError{Op: "replace seccomp profile (existing file is not ours)", Path: path, Err: err}
	}

	return path, nil
}

// reusableProfile reports whether path is a regular file owned by the
// current user that already holds profile. Symlinks are never followed.
func reusableProfile(path string, profile []byte) bool {
	var stat unix.Stat_t
	if err := unix.Lstat(path, &stat); err != nil {
		return false
	}
	if stat.Mode&unix.S_IFMT != unix.S_IFREG || stat.Uid != uint32(unix.Getuid()) {
		return false
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	want := blake3.Sum256(profile)
	have := blake3.Sum256(existing)
	return bytes.Equal(want[:], have[:])
}
