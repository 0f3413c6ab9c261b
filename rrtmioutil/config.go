/*
Copyright © 2026 the rrtmio authors.
This file is part of rrtmio.

rrtmio is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

rrtmio is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with rrtmio.  If not, see <http://www.gnu.org/licenses/>.
*/

package rrtmioutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// File kinds accepted by the Kind option.
const (
	kindProfile = "profile"
	kindCloud   = "cloud"
	kindResult  = "result"
)

// Description formats accepted by the Format option.
const (
	formatTOML = "toml"
	formatJSON = "json"
)

// checkInputFile makes sure that the input file named by the configuration
// variable name is specified and exists, and expands any environment
// variables.
func checkInputFile(f, name string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("rrtmio: you need to specify the %s configuration variable", name)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("rrtmio: the %s doesn't exist: %v", name, err)
	}
	return f, nil
}

// checkOutputFile makes sure that the directory of the output file exists,
// and expands any environment variables. An empty name means standard
// output.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("rrtmio: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

func checkKind(k string) (string, error) {
	switch k = strings.ToLower(k); k {
	case kindProfile, kindCloud, kindResult:
		return k, nil
	}
	return "", fmt.Errorf("rrtmio: invalid Kind %q; it must be one of profile, cloud or result", k)
}

func checkFormat(f string) (string, error) {
	switch f = strings.ToLower(f); f {
	case formatTOML, formatJSON:
		return f, nil
	}
	return "", fmt.Errorf("rrtmio: invalid Format %q; it must be toml or json", f)
}

// readDescription reads the TOML or JSON file at path into v. The format
// is chosen by the file extension. Keys that do not correspond to a field
// of v are an error, so that misspelled names are not silently dropped.
func readDescription(path string, v interface{}) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.DecodeFile(path, v)
		if err != nil {
			return fmt.Errorf("rrtmio: reading %s: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return fmt.Errorf("rrtmio: reading %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		return nil
	case ".json":
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("rrtmio: reading %s: %v", path, err)
		}
		d := json.NewDecoder(bytes.NewReader(b))
		d.DisallowUnknownFields()
		if err := d.Decode(v); err != nil {
			return fmt.Errorf("rrtmio: reading %s: %v", path, err)
		}
		return nil
	default:
		return fmt.Errorf("rrtmio: can't tell the format of %s from its extension %q; use .toml or .json", path, ext)
	}
}

// writeDescription writes v to w in the given format.
func writeDescription(w io.Writer, v interface{}, format string) error {
	switch format {
	case formatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("rrtmio: writing TOML: %v", err)
		}
	case formatJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		if err := e.Encode(v); err != nil {
			return fmt.Errorf("rrtmio: writing JSON: %v", err)
		}
	default:
		return fmt.Errorf("rrtmio: invalid format %q", format)
	}
	return nil
}

// writeOutput writes b to the file at path, or to stdout if path is empty.
func writeOutput(stdout io.Writer, path string, b []byte) error {
	if path == "" {
		_, err := stdout.Write(b)
		return err
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("rrtmio: writing output file: %v", err)
	}
	return nil
}

// readInput returns the contents of the file at path.
func readInput(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("rrtmio: reading input file: %v", err)
	}
	return string(b), nil
}
