package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"docanalyzer/internal/model"
)

// extractDOCX reads a .docx archive directly: body text from
// word/document.xml, author/title/dates from docProps/core.xml and the page
// count from docProps/app.xml.
func extractDOCX(raw []byte) (*model.DocumentMetadata, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx archive: %w", err)
	}

	meta := newMetadata()

	doc, err := zipEntry(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}
	text, err := docxBodyText(doc)
	if err != nil {
		return nil, fmt.Errorf("parse docx body: %w", err)
	}
	meta.TextContent = strings.TrimSpace(text)

	// Properties are best-effort; a docx without them is still usable.
	if core, err := zipEntry(zr, "docProps/core.xml"); err == nil {
		applyCoreProps(core, meta)
	}
	if app, err := zipEntry(zr, "docProps/app.xml"); err == nil {
		applyAppProps(app, meta)
	}

	return meta, nil
}

func zipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("docx entry %s not found", name)
}

// docxBodyText walks the WordprocessingML token stream collecting text runs
// (w:t) and inserting a newline at every paragraph end (w:p).
func docxBodyText(doc []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))
	var b strings.Builder
	var inText bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

type coreProps struct {
	Creator  string `xml:"creator"`
	Title    string `xml:"title"`
	Created  string `xml:"created"`
	Modified string `xml:"modified"`
}

func applyCoreProps(raw []byte, meta *model.DocumentMetadata) {
	var props coreProps
	if err := xml.Unmarshal(raw, &props); err != nil {
		return
	}
	if v := strings.TrimSpace(props.Creator); v != "" {
		meta.Author = v
	}
	if v := strings.TrimSpace(props.Title); v != "" {
		meta.Title = v
	}
	if v := strings.TrimSpace(props.Created); v != "" {
		meta.CreationDate = normalizeDate(v)
	}
	if v := strings.TrimSpace(props.Modified); v != "" {
		meta.ModificationDate = normalizeDate(v)
	}
}

type appProps struct {
	Pages int `xml:"Pages"`
}

func applyAppProps(raw []byte, meta *model.DocumentMetadata) {
	var props appProps
	if err := xml.Unmarshal(raw, &props); err != nil {
		return
	}
	meta.PageCount = coercePageCount(props.Pages)
}
