package render

import (
	"errors"

	"schooldocs_backend/internals/features/documents/drafts"
)

var ErrUnknownDocument = errors.New("render: unknown document type")

// SchoolHeader is printed at the top of every document.
type SchoolHeader struct {
	Name    string
	NameBn  string
	Address string
	EIIN    string
	Phone   string
	Email   string
	LogoURL string
}

func (h SchoolHeader) NameIn(lang string) string {
	if lang == drafts.LangBN && h.NameBn != "" {
		return h.NameBn
	}
	if h.Name == "" {
		return "School"
	}
	return h.Name
}

// RenderInput is the deterministic input for both renderers.
type RenderInput struct {
	Draft    drafts.Draft
	Settings drafts.TemplateSettings
	School   SchoolHeader
}

type HTMLRenderer interface {
	RenderHTML(input RenderInput) (string, error)
}

type PDFRenderer interface {
	RenderPDF(input RenderInput) ([]byte, error)
}
