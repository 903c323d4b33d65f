package requests

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fileflow"
)

//go:embed default_tree.yaml
var defaultTree []byte

// Format of a nodes definition file
type Format string

const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// FormatFromPath picks the format by file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSONFormat, nil
	case ".yaml", ".yml":
		return YAMLFormat, nil
	default:
		return "", fmt.Errorf("unknown nodes file extension: %s", path)
	}
}

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (fileflow.Kind, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return 0, err
	}
	return fileflow.ParseKind(meta.Type)
}

// UnmarshalNodeRequest handles a single JSON node definition
func UnmarshalNodeRequest(data []byte) (*fileflow.NodeRequest, error) {
	var dto NodeRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return convertNodeDTO(dto)
}

// ParseNodes decodes a list of node definitions. Every entry is validated;
// the first invalid one aborts parsing with its index in the error.
func ParseNodes(data []byte, format Format) ([]*fileflow.NodeRequest, error) {
	var dtos []NodeRequestDTO
	switch format {
	case JSONFormat:
		if err := json.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
		}
	case YAMLFormat:
		if err := yaml.Unmarshal(data, &dtos); err != nil {
			return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown nodes format: %s", format)
	}

	reqs := make([]*fileflow.NodeRequest, 0, len(dtos))
	for i, dto := range dtos {
		req, err := convertNodeDTO(dto)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// LoadNodesFile reads and parses a nodes definition file; the format is
// chosen by extension
func LoadNodesFile(path string) ([]*fileflow.NodeRequest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseNodes(data, format)
}

// DefaultNodes returns the built-in sample tree
func DefaultNodes() []*fileflow.NodeRequest {
	reqs, err := ParseNodes(defaultTree, YAMLFormat)
	if err != nil {
		// embedded at build time, so this is a programming error
		panic(err)
	}
	return reqs
}

// Conversion logic with defaults in the unmarshaling layer
func convertNodeDTO(dto NodeRequestDTO) (*fileflow.NodeRequest, error) {
	kind, err := fileflow.ParseKind(dto.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dto.Path) == "" {
		return nil, fileflow.NewInvalidPathError("node path cannot be empty", nil)
	}

	req := &fileflow.NodeRequest{
		Path: dto.Path,
		Type: kind,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}
	switch kind {
	case fileflow.KindFile:
		req.Content = dto.Content
	case fileflow.KindFolder:
		// folders never carry content
	}
	return req, nil
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
