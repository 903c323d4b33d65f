// Package fileflow contains core domain types and interfaces for the FileFlow
// simulated file manager
package fileflow

import (
	"fmt"
	"strings"
)

// Kind discriminates a [Record] as a file or a folder.
// The zero value is invalid so an unset kind is never mistaken for a file.
type Kind uint8

const (
	KindFile Kind = iota + 1
	KindFolder
)

// ParseKind converts user input into a Kind. "dir" and "directory" are
// accepted as aliases of "folder".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile, nil
	case "folder", "dir", "directory":
		return KindFolder, nil
	default:
		return 0, NewValidationError(fmt.Sprintf("unknown kind %q", s), nil)
	}
}

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the declared kinds
func (k Kind) Valid() bool {
	return k == KindFile || k == KindFolder
}

// MarshalText implements encoding.TextMarshaler; used by both the JSON and
// YAML encoders.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, NewValidationError(fmt.Sprintf("cannot marshal %s", k), nil)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Record is one file or folder entry in the simulated tree.
//
// Path is always absolute, '/'-delimited and equal to the parent path joined
// with Name. Folder paths never carry a trailing slash.
type Record struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Kind    Kind    `json:"kind" yaml:"kind"`
	Path    string  `json:"path" yaml:"path"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty"` // nil when the record has no content
}

func (r Record) IsFolder() bool {
	return r.Kind == KindFolder
}

func (r Record) IsFile() bool {
	return r.Kind == KindFile
}

// HasContent is true for records carrying a non-empty content string
func (r Record) HasContent() bool {
	return r.Content != nil && *r.Content != ""
}
