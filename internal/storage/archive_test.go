package storage

import (
	"bytes"
	"testing"
)

func TestArchiveSaveAndGet(t *testing.T) {
	archive := NewLocalArchive(t.TempDir())
	data := []byte("workbook bytes")

	saved, err := archive.Save(t.Context(), "ny_full_week", data)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Preset != "ny_full_week" {
		t.Errorf("saved preset = %q", saved.Preset)
	}

	got, err := archive.Get(t.Context(), saved.Key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("round-tripped workbook differs from saved bytes")
	}
}

func TestArchiveListRecoversPreset(t *testing.T) {
	archive := NewLocalArchive(t.TempDir())
	if _, err := archive.Save(t.Context(), "ny_first_half", []byte("a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := archive.Save(t.Context(), "ny_second_half", []byte("b")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	list, err := archive.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(list))
	}
	presets := map[string]bool{}
	for _, item := range list {
		presets[item.Preset] = true
	}
	if !presets["ny_first_half"] || !presets["ny_second_half"] {
		t.Errorf("presets recovered from keys = %v", presets)
	}
}

func TestPresetFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2025-12-25/ny_full_week_ab12cd34.xlsx", "ny_full_week"},
		{"ny_first_half_00000000.xlsx", "ny_first_half"},
		{"stray.xlsx", "stray"},
	}
	for _, tt := range tests {
		if got := presetFromKey(tt.key); got != tt.want {
			t.Errorf("presetFromKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
