package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/Manum-dev/analyze-tracker/analysis"
)

// TextInputLabel is the source label of text passed directly on the command line.
const TextInputLabel = "text_input"

// Read resolves exactly one input: text, or the contents of file. It returns the text to analyze
// and the label stored alongside the result. Every failure wraps analysis.ErrInput.
func Read(text, file string) (content string, label string, err error) {
	switch {
	case text != "" && file != "":
		return "", "", fmt.Errorf("%w: provide either text or a file, not both", analysis.ErrInput)
	case text != "":
		return text, TextInputLabel, nil
	case file != "":
		content, err := ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return content, "file:" + file, nil
	default:
		return "", "", fmt.Errorf("%w: provide text or a file to analyze", analysis.ErrInput)
	}
}

// ReadFile returns the text of path. PDFs are extracted page by page; anything else must be UTF-8.
func ReadFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %w", analysis.ErrInput, path, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8 text", analysis.ErrInput, path)
	}
	return string(b), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf %s: %w", analysis.ErrInput, path, err)
	}
	defer f.Close()

	var b strings.Builder
	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, pageErr := p.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: no extractable text found in pdf %s", analysis.ErrInput, path)
	}
	return b.String(), nil
}
