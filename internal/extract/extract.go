package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// resumeExtensions lists the single-file formats the extractor accepts.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// SupportedResume reports whether a filename carries an extractable resume
// extension.
func SupportedResume(filename string) bool {
	return resumeExtensions[strings.ToLower(filepath.Ext(filename))]
}

// File extracts plain text from a resume file, dispatching on extension.
// Legacy .doc files are rejected with ErrUnsupportedFormat.
func File(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
		return textFile(path)
	case ".pdf":
		return pdfFile(path)
	case ".docx":
		return docxFile(path)
	default:
		return "", &ErrUnsupportedFormat{Filename: filepath.Base(path), Extension: ext}
	}
}

func textFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	text := normalize(string(data))
	if text == "" {
		return "", &ErrEmptyDocument{Filename: filepath.Base(path)}
	}
	return text, nil
}

func pdfFile(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		buf.WriteString(content)
		buf.WriteString("\n")
	}

	text := normalize(buf.String())
	if text == "" {
		return "", &ErrEmptyDocument{Filename: filepath.Base(path)}
	}
	return text, nil
}

func docxFile(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer func() { _ = r.Close() }()

	raw := r.Editable().GetContent()
	text := normalize(stripXMLTags(raw))
	if text == "" {
		return "", &ErrEmptyDocument{Filename: filepath.Base(path)}
	}
	return text, nil
}

// stripXMLTags flattens document XML to text, inserting line breaks at
// paragraph boundaries.
func stripXMLTags(s string) string {
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalize collapses line endings and trims surrounding whitespace while
// preserving line structure for downstream name extraction.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
