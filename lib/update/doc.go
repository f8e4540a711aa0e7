// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package update implements yolobox's self-update and the passive
// "newer version available" notice.
//
// [Client.LatestVersion] asks the GitHub releases API for the newest
// release tag. [DetectInstallMethod] decides whether the running binary
// is managed by Homebrew (in which case yolobox only prints the brew
// command) or was installed directly. For direct installs,
// [Client.DownloadBinary] fetches the platform's yolobox_<os>_<arch>.tar.gz
// asset, [ExtractBinary] pulls the executable out of it, and
// [ReplaceExecutable] swaps it in with an atomic rename. [PullImage]
// refreshes the container image.
//
// [Notifier] rate-limits the background release check to once per
// CheckInterval using a small CBOR cache file, and never fails the
// caller: any error just suppresses the notice.
package update
