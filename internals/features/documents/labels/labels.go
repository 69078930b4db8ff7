// Package labels serves the English/Bengali lookup tables used by
// API responses and rendered documents.
package labels

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
)

//go:embed labels.json
var rawLabels []byte

const (
	KindDocumentType     = "document_type"
	KindCategory         = "category"
	KindNotificationType = "notification_type"
	KindPriority         = "priority"
	KindMeetingStatus    = "meeting_status"
	KindPaymentStatus    = "payment_status"
	KindCreditType       = "credit_type"
	KindHeading          = "heading"
	KindField            = "field"
	KindWeekday          = "weekday"
)

const (
	LangEN = "en"
	LangBN = "bn"
)

type Label struct {
	En            string `json:"en"`
	Bn            string `json:"bn"`
	Description   string `json:"description,omitempty"`
	DescriptionBn string `json:"description_bn,omitempty"`
	Icon          string `json:"icon,omitempty"`
}

// In picks the text for lang; Bengali falls back to English when missing.
func (l Label) In(lang string) string {
	if lang == LangBN && l.Bn != "" {
		return l.Bn
	}
	return l.En
}

type table map[string]map[string]Label

var (
	loaded  table
	loadErr error
	once    sync.Once
)

func load() (table, error) {
	once.Do(func() {
		var t table
		if err := sonic.Unmarshal(rawLabels, &t); err != nil {
			loadErr = fmt.Errorf("labels: decode embedded table: %w", err)
			return
		}
		loaded = t
	})
	return loaded, loadErr
}

// Lookup returns the label for key in kind. Unknown keys echo the key back
// (humanized) so the caller always has something to show.
func Lookup(kind, key string) Label {
	t, err := load()
	if err == nil {
		if l, ok := t[kind][key]; ok {
			return l
		}
	}
	h := humanize(key)
	return Label{En: h, Bn: h}
}

// Known reports whether key exists in kind.
func Known(kind, key string) bool {
	t, err := load()
	if err != nil {
		return false
	}
	_, ok := t[kind][key]
	return ok
}

// Keys lists the keys of kind in no particular order.
func Keys(kind string) []string {
	t, err := load()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(t[kind]))
	for k := range t[kind] {
		out = append(out, k)
	}
	return out
}

func Text(kind, key, lang string) string {
	return Lookup(kind, key).In(lang)
}

// Field is shorthand for document field captions.
func Field(key, lang string) string {
	return Text(KindField, key, lang)
}

func humanize(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
