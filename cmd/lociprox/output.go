package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// writeAtomic writes path through a temporary file in the same directory
// and renames it into place, so a failed run leaves no partial output.
// Missing parent directories are created.
func writeAtomic(path string, fn func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 256*1024)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	return nil
}

// baseName strips the directory and the edge-file suffix from path:
// "x/Sample-1_distance.txt" -> "Sample-1".
func baseName(path string) string {
	b := filepath.Base(path)
	for _, suf := range []string{"_distance_filtered.txt", "_distance.txt"} {
		if strings.HasSuffix(b, suf) {
			return strings.TrimSuffix(b, suf)
		}
	}

	return strings.TrimSuffix(b, filepath.Ext(b))
}

// thresholdTag renders a threshold for file and column names.
func thresholdTag(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}
