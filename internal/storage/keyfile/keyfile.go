// Package keyfile persists the key store as a JSON file.
package keyfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yndnr/keyman/internal/core/domain"
	"github.com/yndnr/keyman/internal/storage/memory"
)

// DefaultPath is the keyfile used when none is configured.
const DefaultPath = "keyfile.json"

// fileMode is applied to newly created keyfiles; they hold secrets.
const fileMode fs.FileMode = 0o600

// Load reads all keys from path. A missing or empty file yields no keys.
func Load(path string) ([]*domain.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*domain.Key{}, nil
		}
		return nil, fmt.Errorf("keyfile: read %s: %w", path, err)
	}
	return decode(path, data)
}

// LoadList reads path into a new KeyList. A file that repeats a key value
// or holds a record without id or key is reported as corrupt.
func LoadList(path string) (*memory.KeyList, error) {
	keys, err := Load(path)
	if err != nil {
		return nil, err
	}

	list := memory.NewKeyList()
	for _, k := range keys {
		if err := k.Validate(); err != nil {
			return nil, domain.ErrCorruptKeyfile.WithDetails(path).WithCause(err)
		}
		if err := list.Append(k, domain.FieldKey); err != nil {
			return nil, domain.ErrCorruptKeyfile.WithDetails(path).WithCause(err)
		}
	}
	return list, nil
}

// Reload merges keys from path into list. Keys whose value is already in
// list are skipped; existing entries are left untouched. It returns the
// number of keys added.
func Reload(list *memory.KeyList, path string) (int, error) {
	keys, err := Load(path)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, k := range keys {
		if err := k.Validate(); err != nil {
			return added, domain.ErrCorruptKeyfile.WithDetails(path).WithCause(err)
		}
		if list.Contains(domain.FieldKey, k.Key) {
			continue
		}
		if err := list.Append(k, domain.FieldKey); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// Save writes keys to path, replacing its content. The data goes to a temp
// file that is synced and renamed over path. An existing file keeps its
// permission bits.
func Save(path string, keys []*domain.Key) error {
	data, err := encode(keys)
	if err != nil {
		return err
	}

	mode := fileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("keyfile: create temp file: %w", err)
	}
	tempPath := tmp.Name()
	defer os.Remove(tempPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("keyfile: write: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("keyfile: chmod: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("keyfile: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("keyfile: close: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("keyfile: rename: %w", err)
	}
	return nil
}

func decode(path string, data []byte) ([]*domain.Key, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []*domain.Key{}, nil
	}

	var keys []*domain.Key
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, domain.ErrCorruptKeyfile.WithDetails(path).WithCause(err)
	}
	for i, k := range keys {
		if k == nil {
			return nil, domain.ErrCorruptKeyfile.WithDetails(fmt.Sprintf("%s: entry %d is null", path, i))
		}
	}
	if keys == nil {
		keys = []*domain.Key{}
	}
	return keys, nil
}

func encode(keys []*domain.Key) ([]byte, error) {
	if keys == nil {
		keys = []*domain.Key{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(keys); err != nil {
		return nil, fmt.Errorf("keyfile: encode: %w", err)
	}
	return buf.Bytes(), nil
}
