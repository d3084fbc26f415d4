package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Read returns the shader source at path. A missing file yields fallback
// with fromDisk false; any other read error is returned.
func Read(path, fallback string) (src string, fromDisk bool, err error) {
	return ReadWith(os.ReadFile, path, fallback)
}

// ReadWith is Read with the file contents supplied by load. Errors matching
// fs.ErrNotExist select the fallback.
func ReadWith(load func(string) ([]byte, error), path, fallback string) (src string, fromDisk bool, err error) {
	data, err := load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading shader %s: %w", path, err)
	}
	return string(data), true, nil
}
