package fileflow

// NodeRequest describes a record to add to the tree when seeding it from a
// definitions file. It should be passed from entrypoints (i.e. cli, config
// files etc) to the filesystem AddNode method.
type NodeRequest struct {
	Path    string
	Type    Kind
	UUID    string  // Optional ID to keep record identity stable between runs
	Content *string // Only meaningful for files
}

// GetType returns the requested Kind
func (r *NodeRequest) GetType() Kind {
	return r.Type
}

func (r *NodeRequest) GetPath() string {
	return r.Path
}
