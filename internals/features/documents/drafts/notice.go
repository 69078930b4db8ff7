package drafts

import "strings"

type NoticePoint struct {
	Key
	Text string `json:"text" validate:"required,max=500"`
}

type Notice struct {
	NoticeNumber string `json:"noticeNumber,omitempty" validate:"max=40"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Title        string `json:"title" validate:"required,max=200"`
	TitleBn      string `json:"titleBn,omitempty" validate:"max=300"`
	Body         string `json:"body" validate:"required,max=5000"`
	Audience     string `json:"audience,omitempty" validate:"max=120"`
	IssuedBy     string `json:"issuedBy,omitempty" validate:"max=120"`
	Designation  string `json:"designation,omitempty" validate:"max=120"`

	Points Collection[NoticePoint, *NoticePoint] `json:"points" validate:"dive"`
}

func (d *Notice) DocumentType() string { return TypeNotice }

func (d *Notice) FileName() string {
	if strings.TrimSpace(d.NoticeNumber) != "" {
		return fileName("notice", d.NoticeNumber)
	}
	return fileName("notice", d.Date)
}

// Recompute only tidies text; a notice has no derived numbers.
func (d *Notice) Recompute() {
	d.Title = strings.TrimSpace(d.Title)
	d.Body = strings.TrimSpace(d.Body)
	for i := range d.Points {
		d.Points[i].Text = strings.TrimSpace(d.Points[i].Text)
	}
}

func (d *Notice) Validate() error { return validateStruct(d).orNil() }

func (d *Notice) list() listOps     { return &d.Points }
func (d *Notice) listField() string { return "points" }
