package jsonutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnmarshalWithContext(t *testing.T) {
	type TestStruct struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name:    "valid JSON",
			data:    []byte(`{"name":"test"}`),
			wantErr: false,
		},
		{
			name:    "invalid JSON",
			data:    []byte(`not json`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v TestStruct
			err := UnmarshalWithContext(tt.data, &v, "test context")
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && v.Name != "test" {
				t.Errorf("UnmarshalWithContext() v.Name = %q, want %q", v.Name, "test")
			}
		})
	}
}

func TestWriteFile_ThenReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	in := map[string][]string{"gifportal": {"abc"}}

	if err := WriteFile(path, in); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var out map[string][]string
	if err := ReadFile(path, &out); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(out["gifportal"]) != 1 || out["gifportal"][0] != "abc" {
		t.Errorf("ReadFile: got %v", out)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestReadFile_Missing(t *testing.T) {
	var v map[string]string
	if err := ReadFile(filepath.Join(t.TempDir(), "nope.json"), &v); err == nil {
		t.Error("ReadFile on missing file: expected error")
	}
}

func TestByteArray(t *testing.T) {
	got, err := ByteArray([]byte(`[0, 1, 255]`), "key")
	if err != nil {
		t.Fatalf("ByteArray: %v", err)
	}
	if len(got) != 3 || got[0] != 0 || got[1] != 1 || got[2] != 255 {
		t.Errorf("ByteArray: got %v", got)
	}

	if _, err := ByteArray([]byte(`[256]`), "key"); err == nil {
		t.Error("ByteArray: expected error for 256")
	}
	if _, err := ByteArray([]byte(`[-1]`), "key"); err == nil {
		t.Error("ByteArray: expected error for -1")
	}
}

func TestIndexedByteObject(t *testing.T) {
	got, err := IndexedByteObject(map[string]int{"1": 7, "0": 3}, "key")
	if err != nil {
		t.Fatalf("IndexedByteObject: %v", err)
	}
	if len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("IndexedByteObject: got %v", got)
	}

	if _, err := IndexedByteObject(map[string]int{"0": 1, "2": 1}, "key"); err == nil {
		t.Error("IndexedByteObject: expected error for gap in indices")
	}
}
