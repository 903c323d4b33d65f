package tree

import (
	"fmt"
	"strings"

	"github.com/brettbedarf/fileflow"
	"github.com/brettbedarf/fileflow/pathutil"
)

// ValidateName checks a display name can be used as the last component of a
// path.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fileflow.NewValidationError("name cannot be empty", nil)
	}
	if name == "." || name == ".." {
		return fileflow.NewValidationError(fmt.Sprintf("name %q is reserved", name), nil)
	}
	if strings.Contains(name, "/") {
		return fileflow.NewValidationError(fmt.Sprintf("name %q cannot contain '/'", name), nil)
	}
	return nil
}

// Create appends a new record named name under parentPath.
// Parent existence is not checked; path collisions are only rejected with
// [WithUniquePaths].
func Create(s Snapshot, parentPath, name string, kind fileflow.Kind, fns ...OptionFunc) (Snapshot, fileflow.Record, error) {
	opts := applyOptions(fns)

	if err := ValidateName(name); err != nil {
		return s, fileflow.Record{}, err
	}

	rec := fileflow.Record{
		ID:   opts.NewID(),
		Name: name,
		Kind: kind,
		Path: pathutil.Join(pathutil.Clean(parentPath), name),
	}
	switch kind {
	case fileflow.KindFile:
		if opts.FileContent != nil {
			content := *opts.FileContent
			rec.Content = &content
		}
	case fileflow.KindFolder:
	default:
		return s, fileflow.Record{}, fileflow.NewValidationError(fmt.Sprintf("unknown kind %s", kind), nil)
	}

	if opts.UniquePaths {
		if err := checkFree(s, rec.Path); err != nil {
			return s, fileflow.Record{}, err
		}
	}

	out := make(Snapshot, len(s), len(s)+1)
	copy(out, s)
	return append(out, rec), rec, nil
}

// Rename changes the name of the record with the given id. For folders every
// descendant path has the old folder path prefix replaced by the new one.
func Rename(s Snapshot, id, newName string, fns ...OptionFunc) (Snapshot, fileflow.Record, error) {
	opts := applyOptions(fns)

	if err := ValidateName(newName); err != nil {
		return s, fileflow.Record{}, err
	}
	target, _, ok := s.Find(id)
	if !ok {
		return s, fileflow.Record{}, fileflow.NewNotFoundError(fmt.Sprintf("no record with id %q", id), nil)
	}

	newPath := pathutil.Join(pathutil.Dirname(target.Path), newName)
	if opts.UniquePaths && newPath != target.Path {
		if err := checkFree(s, newPath); err != nil {
			return s, fileflow.Record{}, err
		}
	}

	out, updated, err := relocate(s, target, newName, newPath)
	if err != nil {
		return s, fileflow.Record{}, err
	}
	return out, updated, nil
}

// Move relocates the record with the given id under destination, keeping its
// name. Folder descendants follow with the same prefix rewrite as [Rename].
func Move(s Snapshot, id, destination string, fns ...OptionFunc) (Snapshot, fileflow.Record, error) {
	opts := applyOptions(fns)

	if strings.TrimSpace(destination) == "" {
		return s, fileflow.Record{}, fileflow.NewValidationError("destination path cannot be empty", nil)
	}
	target, _, ok := s.Find(id)
	if !ok {
		return s, fileflow.Record{}, fileflow.NewNotFoundError(fmt.Sprintf("no record with id %q", id), nil)
	}

	dest := pathutil.Clean(destination)
	if target.IsFolder() && (dest == target.Path || pathutil.IsDescendant(dest, target.Path)) {
		return s, fileflow.Record{}, fileflow.NewValidationError(
			fmt.Sprintf("cannot move folder %q into itself", target.Name), nil)
	}

	newPath := pathutil.Join(dest, target.Name)
	if opts.UniquePaths && newPath != target.Path {
		if err := checkFree(s, newPath); err != nil {
			return s, fileflow.Record{}, err
		}
	}

	out, updated, err := relocate(s, target, target.Name, newPath)
	if err != nil {
		return s, fileflow.Record{}, err
	}
	return out, updated, nil
}

// Delete removes the record with the given id and, for folders, every record
// below it. The removed records are returned target first.
func Delete(s Snapshot, id string) (Snapshot, []fileflow.Record, error) {
	target, _, ok := s.Find(id)
	if !ok {
		return s, nil, fileflow.NewNotFoundError(fmt.Sprintf("no record with id %q", id), nil)
	}

	var cascade bool
	switch target.Kind {
	case fileflow.KindFolder:
		cascade = true
	case fileflow.KindFile:
	default:
		return s, nil, fileflow.NewValidationError(fmt.Sprintf("unknown kind %s", target.Kind), nil)
	}

	out := make(Snapshot, 0, len(s))
	removed := []fileflow.Record{target}
	for _, rec := range s {
		switch {
		case rec.ID == target.ID:
		case cascade && pathutil.IsDescendant(rec.Path, target.Path):
			removed = append(removed, rec)
		default:
			out = append(out, rec)
		}
	}
	return out, removed, nil
}

// View returns the content of a file record. Folders and files without
// content fail with ErrNotViewable carrying the message to show the user.
func View(rec fileflow.Record) (string, error) {
	switch rec.Kind {
	case fileflow.KindFolder:
		return "", fileflow.NewNotViewableError(fmt.Sprintf("Cannot view content of folder %q.", rec.Name))
	case fileflow.KindFile:
		if !rec.HasContent() {
			return "", fileflow.NewNotViewableError(fmt.Sprintf("No content available for %q.", rec.Name))
		}
		return *rec.Content, nil
	default:
		return "", fileflow.NewValidationError(fmt.Sprintf("unknown kind %s", rec.Kind), nil)
	}
}

// relocate gives target a new name and path and rebases its descendants when
// target is a folder. Rename and Move both go through here so child paths are
// always rebuilt with pathutil.Join.
func relocate(s Snapshot, target fileflow.Record, newName, newPath string) (Snapshot, fileflow.Record, error) {
	var cascade bool
	switch target.Kind {
	case fileflow.KindFolder:
		cascade = true
	case fileflow.KindFile:
	default:
		return nil, fileflow.Record{}, fileflow.NewValidationError(fmt.Sprintf("unknown kind %s", target.Kind), nil)
	}

	oldPath := target.Path
	target.Name = newName
	target.Path = newPath

	out := s.Clone()
	for i, rec := range out {
		switch {
		case rec.ID == target.ID:
			out[i] = target
		case cascade && pathutil.IsDescendant(rec.Path, oldPath):
			out[i].Path = pathutil.Rebase(rec.Path, oldPath, newPath)
		}
	}
	return out, target, nil
}

func checkFree(s Snapshot, p string) error {
	if existing, ok := s.FindPath(p); ok {
		return fileflow.NewAlreadyExistsError(fmt.Sprintf("%s %q already exists", existing.Kind, p))
	}
	return nil
}
