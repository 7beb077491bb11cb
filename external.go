// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadExternalData is the default external-data loader. It reads the
// byte span described by the record's external-data entries from a
// file under baseDir and stores it in RawData. The location entry is
// interpreted relative to baseDir and must not escape it.
func LoadExternalData(rec *TensorRecord, baseDir string) error {
	var location string
	var offset int64
	length := int64(-1)

	for _, e := range rec.ExternalData {
		switch e.Key {
		case "location":
			location = e.Value
		case "offset":
			v, err := strconv.ParseInt(e.Value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid external data offset %q: %w", e.Value, err)
			}
			offset = v
		case "length":
			v, err := strconv.ParseInt(e.Value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid external data length %q: %w", e.Value, err)
			}
			length = v
		}
	}
	if location == "" {
		return fmt.Errorf("%w: external data entries name no location", ErrUnsupported)
	}

	if baseDir == "" {
		baseDir = "."
	}
	path := filepath.Join(baseDir, filepath.FromSlash(location))
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("external data location %q escapes the base directory", location)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening external data file: %w", err)
	}
	defer f.Close()

	if offset != 0 {
		if _, err = f.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("seeking external data file: %w", err)
		}
	}

	if length < 0 {
		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("reading external data file: %w", err)
		}
		rec.RawData = data
		return nil
	}
	data := make([]byte, length)
	if _, err = io.ReadFull(f, data); err != nil {
		return fmt.Errorf("reading external data file: %w", err)
	}
	rec.RawData = data
	return nil
}
