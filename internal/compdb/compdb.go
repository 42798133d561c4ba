// Package compdb reads a clang-style compile_commands.json compilation
// database. errorck does not run a preprocessor, so the database is used
// solely to discover which files belong to a project and to recover their
// per-TU include search paths for diagnostics, not to drive a compiler
// frontend.
package compdb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one translation unit named by the compilation database, with
// its absolute source path and the include/define flags recovered from
// its recorded compile command.
type Entry struct {
	Directory string
	File      string
	Includes  []string
	Defines   []string
}

// AbsPath returns the entry's source file as an absolute path, resolving
// a relative File against Directory the way clang's tooling does.
func (e Entry) AbsPath() string {
	if filepath.IsAbs(e.File) {
		return e.File
	}
	return filepath.Join(e.Directory, e.File)
}

// rawEntry is the on-disk compile_commands.json element shape: either a
// single command string or an arguments array, per the clang standard.
type rawEntry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command,omitempty"`
	Arguments []string `json:"arguments,omitempty"`
}

// Load reads compile_commands.json from dir (the compilation database
// directory named on the command line) and returns one Entry per element.
func Load(dir string) ([]Entry, error) {
	path := filepath.Join(dir, "compile_commands.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compilation database %s: %w", path, err)
	}
	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse compilation database %s: %w", path, err)
	}
	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		if r.File == "" || r.Directory == "" {
			return nil, fmt.Errorf("compilation database entry %d: file and directory are required", i)
		}
		args := r.Arguments
		if len(args) == 0 && r.Command != "" {
			args = strings.Fields(r.Command)
		}
		includes, defines := extractFlags(args)
		entries = append(entries, Entry{
			Directory: r.Directory,
			File:      r.File,
			Includes:  includes,
			Defines:   defines,
		})
	}
	return entries, nil
}

// extractFlags pulls -I and -D flags (both "-Ifoo" and "-I foo" forms) out
// of a compile command's argument list.
func extractFlags(args []string) (includes, defines []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case strings.HasPrefix(a, "-I"):
			if v := strings.TrimPrefix(a, "-I"); v != "" {
				includes = append(includes, v)
			} else if i+1 < len(args) {
				i++
				includes = append(includes, args[i])
			}
		case strings.HasPrefix(a, "-D"):
			if v := strings.TrimPrefix(a, "-D"); v != "" {
				defines = append(defines, v)
			} else if i+1 < len(args) {
				i++
				defines = append(defines, args[i])
			}
		}
	}
	return includes, defines
}
