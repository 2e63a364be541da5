package extract

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format tags the container type of an uploaded resume.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

const (
	mimePDF = "application/pdf"
	mimeZIP = "application/zip"

	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
)

var (
	// ErrUnsupportedFormat is returned for anything other than PDF or DOCX.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExtraction is returned when the decoder cannot read the payload.
	ErrExtraction = errors.New("extraction failed")
)

// RawDocument is an uploaded file held in memory for the duration of a request.
type RawDocument struct {
	Format Format
	Data   []byte
}

// FormatFromFileName maps a file extension to a Format.
func FormatFromFileName(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

// ExtractTextFromBytes resolves the format from fileName and extracts its text.
func ExtractTextFromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	format, err := FormatFromFileName(fileName)
	if err != nil {
		return "", err
	}
	return ExtractText(ctx, RawDocument{Format: format, Data: data})
}

// ExtractText converts a PDF or DOCX payload into plain text.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func ExtractText(ctx context.Context, doc RawDocument) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch doc.Format {
	case FormatPDF:
		return extractPDF(doc.Data)
	case FormatDOCX:
		return extractDOCX(doc.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
}

func extractPDF(data []byte) (text string, err error) {
	if !mimetype.Detect(data).Is(mimePDF) {
		return "", fmt.Errorf("%w: payload is not a pdf document", ErrExtraction)
	}
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: pdf decoder: %v", ErrExtraction, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	var buf strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		buf.WriteString(pageText(reader.Page(i)))
	}
	return buf.String(), nil
}

// pageText returns "" for pages the decoder cannot read.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	if page.V.IsNull() {
		return ""
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return content
}

func extractDOCX(data []byte) (string, error) {
	if !isZipContainer(data) {
		return "", fmt.Errorf("%w: payload is not a docx document", ErrExtraction)
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	defer doc.Close()

	text, err := paragraphText(doc.Editable().GetContent())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return text, nil
}

func isZipContainer(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is(mimeZIP) {
			return true
		}
	}
	return false
}

// paragraphText joins the text of body-level paragraphs of a WordprocessingML
// document with newlines. Paragraphs inside tables are skipped.
func paragraphText(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))

	var (
		paragraphs []string
		current    strings.Builder
		tableDepth int
		paraDepth  int
		runDepth   int
		inText     bool
	)
	collecting := func() bool { return tableDepth == 0 && paraDepth == 1 }

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					paraDepth++
					if paraDepth == 1 {
						current.Reset()
					}
				}
			case "r":
				runDepth++
			case "t":
				inText = true
			case "tab":
				if collecting() && runDepth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if collecting() && runDepth > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if tableDepth == 0 && paraDepth > 0 {
					if paraDepth == 1 {
						paragraphs = append(paragraphs, current.String())
					}
					paraDepth--
				}
			case "r":
				runDepth--
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && collecting() {
				current.Write(t)
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
