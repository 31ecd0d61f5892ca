// Package jsonutil provides shared helpers for the JSON documents the client
// reads and writes: packaged credentials, the program IDL, and the trust store.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// ReadFile reads the JSON document at path into v. Errors carry the path.
func ReadFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalWithContext(data, v, "parse "+path)
}

// WriteFile writes v as indented JSON to path, creating parent directories.
// The document is written to a temp file in the same directory and renamed
// into place so readers never observe a partial write.
func WriteFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// ByteArray decodes a JSON array of integers (0-255) into bytes.
// encoding/json would otherwise expect a base64 string for []byte.
func ByteArray(data []byte, context string) ([]byte, error) {
	var ints []int
	if err := UnmarshalWithContext(data, &ints, context); err != nil {
		return nil, err
	}
	out := make([]byte, len(ints))
	for i, n := range ints {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%s: element %d out of byte range: %d", context, i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// IndexedByteObject decodes an object keyed by decimal indices ("0", "1", ...)
// into bytes, the shape JSON.stringify produces for a Uint8Array.
func IndexedByteObject(m map[string]int, context string) ([]byte, error) {
	out := make([]byte, len(m))
	for i := range out {
		n, ok := m[fmt.Sprintf("%d", i)]
		if !ok {
			return nil, fmt.Errorf("%s: missing index %d", context, i)
		}
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("%s: index %d out of byte range: %d", context, i, n)
		}
		out[i] = byte(n)
	}
	return out, nil
}
