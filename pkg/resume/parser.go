package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat rejects files outside pdf/doc/docx.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, doc and docx are allowed")

// ErrNoText means the file is structurally readable but yields no plain
// text (scanned PDFs, legacy .doc binaries). Callers fall back to sending
// the raw file inline to the extraction service.
var ErrNoText = errors.New("no extractable text in file")

// AllowedExt reports whether a filename has a supported resume extension.
func AllowedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".doc", ".docx":
		return true
	}
	return false
}

// MimeForFilename returns the content type for a supported resume file.
func MimeForFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".doc":
		return "application/msword"
	}
	return "application/octet-stream"
}

// ParseText extracts plain text from a supported resume file. A supported
// file with no recoverable text returns ErrNoText.
func ParseText(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	case ".doc":
		// Legacy OLE container, no local extraction. The model reads the
		// file inline instead.
		return "", ErrNoText
	default:
		return "", ErrUnsupportedFormat
	}
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", err
	}
	text := collapseWhitespace(buf.String())
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

var xmlTagRe = regexp.MustCompile(`<[^>]+>`)

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var docXML []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		docXML, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}
		break
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	s := string(docXML)
	// Paragraph and tab markers become whitespace before tags are dropped.
	s = strings.ReplaceAll(s, "</w:p>", "\n")
	s = strings.ReplaceAll(s, "<w:tab/>", "\t")
	s = xmlTagRe.ReplaceAllString(s, " ")

	text := collapseWhitespace(s)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

var (
	horizontalWS = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRuns  = regexp.MustCompile(`\n+`)
)

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = horizontalWS.ReplaceAllString(s, " ")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
