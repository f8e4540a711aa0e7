// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type sampleState struct {
	CheckedAt time.Time `cbor:"checked_at"`
	Latest    string    `cbor:"latest,omitempty"`
	Count     int       `cbor:"count"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleState{
		CheckedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Latest:    "1.4.0",
		Count:     42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleState
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.CheckedAt.Equal(original.CheckedAt) || decoded.Latest != original.Latest || decoded.Count != original.Count {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for range 10 {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatal("Marshal is not deterministic for maps")
		}
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	data, err := Marshal(map[string]any{"latest": "2.0.0", "future_field": true})
	if err != nil {
		t.Fatal(err)
	}
	var decoded sampleState
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal with unknown field: %v", err)
	}
	if decoded.Latest != "2.0.0" {
		t.Errorf("Latest = %q", decoded.Latest)
	}
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.cbor")
	original := sampleState{Latest: "1.0.0", Count: 1}

	if err := WriteFile(path, original); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var decoded sampleState
	if err := ReadFile(path, &decoded); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if decoded.Latest != "1.0.0" || decoded.Count != 1 {
		t.Errorf("decoded = %+v", decoded)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("staging file left behind: %d entries", len(entries))
	}

	if err := os.WriteFile(path, []byte{0xff, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ReadFile(path, &decoded); err == nil || !strings.Contains(err.Error(), "decoding") {
		t.Errorf("corrupt file: error = %v", err)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]int{"count": 1})
	if err != nil {
		t.Fatal(err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if notation != `{"count": 1}` {
		t.Errorf("Diagnose = %q", notation)
	}
}
