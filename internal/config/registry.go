// Package config loads and validates the notable-functions registry: the
// JSON file mapping watched/handler/logger function names to their role.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Role is the behavioral category a registered function name plays.
type Role int

const (
	// RoleWatchedReturnValue marks a function whose error contract is
	// communicated through its return value.
	RoleWatchedReturnValue Role = iota
	// RoleWatchedErrno marks a function whose error contract is
	// communicated out-of-band via errno.
	RoleWatchedErrno
	// RoleHandler marks a function that, when it directly wraps an error
	// value as an argument, counts as handling it.
	RoleHandler
	// RoleLogger marks a function that, when it wraps an error value as
	// an argument, merely logs it without handling it.
	RoleLogger
)

func (r Role) String() string {
	switch r {
	case RoleWatchedReturnValue:
		return "watched-return-value"
	case RoleWatchedErrno:
		return "watched-errno"
	case RoleHandler:
		return "handler"
	case RoleLogger:
		return "logger"
	default:
		return "unknown"
	}
}

// entry is the on-disk shape of a single notable-functions element: exactly
// one of Reporting or Type must be set.
type entry struct {
	Name      string `json:"name"`
	Reporting string `json:"reporting,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Registry is the validated, immutable mapping from function name to role
// that the AST walker consults for every call expression's callee name.
type Registry struct {
	roles map[string]Role
}

// RoleOf reports the role registered for name, if any.
func (r *Registry) RoleOf(name string) (Role, bool) {
	role, ok := r.roles[name]
	return role, ok
}

// IsWatched reports whether name is registered as either watched variant,
// and if so which.
func (r *Registry) IsWatched(name string) (Role, bool) {
	role, ok := r.roles[name]
	if !ok || (role != RoleWatchedReturnValue && role != RoleWatchedErrno) {
		return 0, false
	}
	return role, true
}

// IsHandler reports whether name is registered as a handler.
func (r *Registry) IsHandler(name string) bool {
	role, ok := r.roles[name]
	return ok && role == RoleHandler
}

// IsLogger reports whether name is registered as a logger.
func (r *Registry) IsLogger(name string) bool {
	role, ok := r.roles[name]
	return ok && role == RoleLogger
}

// Load reads and validates a notable-functions JSON file at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notable-functions file %s: %w", path, err)
	}
	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse notable-functions file %s: %w", path, err)
	}
	return buildRegistry(entries)
}

func buildRegistry(entries []entry) (*Registry, error) {
	roles := make(map[string]Role, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("notable-functions[%d]: name must be non-empty", i)
		}
		role, err := roleFor(e)
		if err != nil {
			return nil, fmt.Errorf("notable-functions[%d] (%s): %w", i, e.Name, err)
		}
		if _, dup := roles[e.Name]; dup {
			return nil, fmt.Errorf("notable-functions: duplicate name %q across roles", e.Name)
		}
		roles[e.Name] = role
	}
	return &Registry{roles: roles}, nil
}

// NewForTest builds a Registry directly from a name->role-string map,
// skipping the JSON file round-trip. The role strings are the same
// "return_value"/"errno"/"handler"/"logger" values the JSON format uses.
func NewForTest(spec map[string]string) (*Registry, error) {
	entries := make([]entry, 0, len(spec))
	for name, role := range spec {
		switch role {
		case "return_value", "errno":
			entries = append(entries, entry{Name: name, Reporting: role})
		default:
			entries = append(entries, entry{Name: name, Type: role})
		}
	}
	return buildRegistry(entries)
}

func roleFor(e entry) (Role, error) {
	hasReporting := e.Reporting != ""
	hasType := e.Type != ""
	switch {
	case hasReporting && hasType:
		return 0, fmt.Errorf("must set exactly one of reporting/type, got both")
	case hasReporting:
		switch e.Reporting {
		case "return_value":
			return RoleWatchedReturnValue, nil
		case "errno":
			return RoleWatchedErrno, nil
		default:
			return 0, fmt.Errorf("unknown reporting value %q", e.Reporting)
		}
	case hasType:
		switch e.Type {
		case "handler":
			return RoleHandler, nil
		case "logger":
			return RoleLogger, nil
		default:
			return 0, fmt.Errorf("unknown type value %q", e.Type)
		}
	default:
		return 0, fmt.Errorf("must set exactly one of reporting/type, got neither")
	}
}
