// Package extract converts uploaded resume files into plain text.
package extract

import "fmt"

// ErrUnsupportedFormat indicates a file extension the extractor cannot handle.
type ErrUnsupportedFormat struct {
	Filename  string
	Extension string
}

func (e *ErrUnsupportedFormat) Error() string {
	if e.Extension == ".doc" {
		return fmt.Sprintf("legacy .doc format is not supported, convert %s to .docx or PDF", e.Filename)
	}
	return fmt.Sprintf("unsupported file format %q: %s", e.Extension, e.Filename)
}

// ErrEmptyDocument indicates a file yielded no extractable text.
type ErrEmptyDocument struct {
	Filename string
}

func (e *ErrEmptyDocument) Error() string {
	return fmt.Sprintf("no text could be extracted from %s", e.Filename)
}

// ErrArchiveTooLarge indicates a ZIP archive exceeded a configured limit.
type ErrArchiveTooLarge struct {
	Filename string
	Reason   string
}

func (e *ErrArchiveTooLarge) Error() string {
	return fmt.Sprintf("archive %s rejected: %s", e.Filename, e.Reason)
}

// ErrUnsafePath indicates a ZIP entry whose name escapes the extraction root.
type ErrUnsafePath struct {
	Entry string
}

func (e *ErrUnsafePath) Error() string {
	return fmt.Sprintf("archive entry has unsafe path: %s", e.Entry)
}
