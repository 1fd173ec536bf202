package monitor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the directory under os.UserConfigDir() where users can
// override the embedded defaults.
const ConfigDirName = "levelmeter"

// ReadConfig decodes the embedded defaults into target and then overlays
// the user's file of the same name, if it exists. A missing user file is not
// an error.
func ReadConfig(defaults []byte, filename string, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(defaults))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("ReadConfig %v: failed to unmarshal the default settings: %w", filename, err)
	}
	if err := ReadCustomConfig(filename, target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ReadConfig %v: %w", filename, err)
	}
	return nil
}

// ReadCustomConfig reads a file from the user's config directory into target.
func ReadCustomConfig(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	path := filepath.Join(configDir, ConfigDirName, filename)
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}
