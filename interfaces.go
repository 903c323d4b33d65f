package fileflow

// TreeReader provides read-only access to the current record tree for external
// consumers such as the FUSE projection
type TreeReader interface {
	// List returns the entries directly under dirPath whose name contains
	// search, folders first then by name.
	List(dirPath, search string) []Record

	// LookupPath returns the record stored at the given absolute path
	LookupPath(path string) (Record, bool)
}

// TreeOperator defines the mutations a file manager front end needs
type TreeOperator interface {
	TreeReader
	Create(parentPath, name string, kind Kind) (Record, error)
	Rename(id, newName string) (Record, error)
	Move(id, destination string) (Record, error)
	Delete(id string) ([]Record, error)
	View(id string) (string, error)
}

// Op names the mutation that produced an [Event]
type Op string

const (
	OpCreate Op = "create"
	OpRename Op = "rename"
	OpMove   Op = "move"
	OpDelete Op = "delete"
	OpSeed   Op = "seed"
)

// Event is published to observers after a mutation has been applied
type Event struct {
	Op      Op
	Record  Record   // The record the operation targeted, after the change (before it, for deletes)
	OldPath string   // Path of Record before a rename or move
	Removed []Record // Every record removed by a delete, target included
	Records []Record // The full snapshot after the change
}

// Observer receives an [Event] for every successful mutation.
// Implementations must not call back into the store's mutation methods.
type Observer interface {
	OnEvent(ev Event)
}

// ObserverFunc adapts a plain function to [Observer]
type ObserverFunc func(ev Event)

func (f ObserverFunc) OnEvent(ev Event) {
	f(ev)
}
