package atlas

import "fmt"

// Label is one region of interest: the volume index in the atlas and its
// display name.
type Label struct {
	Index int
	Text  string
}

// Header holds the optional <header> fields of an atlas document.
type Header struct {
	Name      string
	ShortName string
	Type      string
	Images    []Image
}

// Image is one <images> entry of the header.
type Image struct {
	ImageFile        string
	SummaryImageFile string
}

// Metadata is the parsed atlas document.
type Metadata struct {
	Header Header
	Labels []Label
}

// ParseError reports an atlas document that is absent, unreadable, malformed
// or structurally incomplete.
type ParseError struct {
	Path string // Empty when parsing from a reader.
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse atlas labels: %v", e.Err)
	}
	return fmt.Sprintf("parse atlas labels %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
