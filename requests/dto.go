package requests

// NodeRequestDTO is the JSON/YAML representation of [fileflow.NodeRequest]
type NodeRequestDTO struct {
	Path    string  `json:"path" yaml:"path"`
	Type    string  `json:"type" yaml:"type"`                           // "file" or "folder" ("dir" accepted)
	UUID    *string `json:"uuid,omitempty" yaml:"uuid,omitempty"`       // Optional ID to keep record identity stable between runs
	Content *string `json:"content,omitempty" yaml:"content,omitempty"` // Only meaningful for files
}
