package tree

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// DefaultFileContent is given to files created without explicit content
const DefaultFileContent = "New file content."

// IDFunc generates a fresh unique record identifier
type IDFunc func() string

// Options configures the tree operations.
type Options struct {
	NewID       IDFunc       // Identifier generator for created records (Default uuid v4)
	UniquePaths bool         // Reject creates, renames and moves onto an occupied path
	FileContent *string      // Content for new files; nil leaves new files without content
	Locale      language.Tag // Collation locale for listing order (Default language.Und)
}

// OptionFunc is a functional option for the tree operations.
type OptionFunc func(opts *Options)

// WithIDFunc sets the generator used for new record identifiers.
func WithIDFunc(fn IDFunc) OptionFunc {
	return func(opts *Options) {
		opts.NewID = fn
	}
}

// WithUniquePaths makes operations fail with ErrAlreadyExists instead of
// producing two records with the same path.
func WithUniquePaths(enabled bool) OptionFunc {
	return func(opts *Options) {
		opts.UniquePaths = enabled
	}
}

// WithFileContent sets the content new files start with.
func WithFileContent(content string) OptionFunc {
	return func(opts *Options) {
		opts.FileContent = &content
	}
}

// WithoutFileContent creates new files without any content.
func WithoutFileContent() OptionFunc {
	return func(opts *Options) {
		opts.FileContent = nil
	}
}

// WithLocale sets the collation locale used to order listings.
func WithLocale(tag language.Tag) OptionFunc {
	return func(opts *Options) {
		opts.Locale = tag
	}
}

func defaultOptions() *Options {
	content := DefaultFileContent
	return &Options{
		NewID:       uuid.NewString,
		FileContent: &content,
		Locale:      language.Und,
	}
}

func applyOptions(fns []OptionFunc) *Options {
	opts := defaultOptions()
	for _, fn := range fns {
		fn(opts)
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return opts
}
