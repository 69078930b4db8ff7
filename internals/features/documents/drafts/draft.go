// Package drafts holds the typed document drafts. Each draft is a single
// state container: clients send scalar fields and list items, Recompute
// derives every computed field.
package drafts

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	helper "schooldocs_backend/internals/helpers"
)

const (
	TypeFeeReceipt     = "fee_receipt"
	TypeMarksheet      = "marksheet"
	TypeNotice         = "notice"
	TypePaySheet       = "pay_sheet"
	TypeResultSheet    = "result_sheet"
	TypeTeacherRoutine = "teacher_routine"
)

// Types in catalog order.
var Types = []string{
	TypeFeeReceipt,
	TypeMarksheet,
	TypeNotice,
	TypePaySheet,
	TypeResultSheet,
	TypeTeacherRoutine,
}

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrItemNotFound        = errors.New("list item not found")
)

type Draft interface {
	DocumentType() string
	// FileName is the PDF download name.
	FileName() string
	Recompute()
	Validate() error

	list() listOps
	listField() string
}

// NormalizeType accepts "fee-receipt", "Fee_Receipt" and "feeReceipt" style
// spellings. Returns "" for unknown types.
func NormalizeType(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '-' || r == ' ':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	t := b.String()
	for _, known := range Types {
		if t == known {
			return t
		}
	}
	return ""
}

func New(docType string) (Draft, error) {
	switch NormalizeType(docType) {
	case TypeFeeReceipt:
		return &FeeReceipt{}, nil
	case TypeMarksheet:
		return &Marksheet{}, nil
	case TypeNotice:
		return &Notice{}, nil
	case TypePaySheet:
		return &PaySheet{}, nil
	case TypeResultSheet:
		return &ResultSheet{}, nil
	case TypeTeacherRoutine:
		return &TeacherRoutine{}, nil
	}
	return nil, ErrUnknownDocumentType
}

// Decode parses raw JSON into the typed draft for docType, fixes item ids
// and recomputes derived fields. It does not validate.
func Decode(docType string, raw []byte) (Draft, error) {
	d, err := New(docType)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 && string(raw) != "null" {
		if err := sonic.Unmarshal(raw, d); err != nil {
			return nil, err
		}
	}
	d.list().ensureIDs()
	d.Recompute()
	return d, nil
}

// Encode returns the canonical JSON of d.
func Encode(d Draft) ([]byte, error) {
	return sonic.Marshal(d)
}

/* ===== validation ===== */

// ValidationError maps json field paths to failed rules.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	return "invalid document: " + strings.Join(keys, ", ")
}

func (e *ValidationError) add(field, rule string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], rule)
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

func validateStruct(s any) *ValidationError {
	err := validate.Struct(s)
	if err == nil {
		return &ValidationError{}
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return &ValidationError{Fields: helper.FieldErrors(ve)}
	}
	out := &ValidationError{}
	out.add("document", err.Error())
	return out
}

func fieldPath(list string, i int, field string) string {
	return list + "[" + strconv.Itoa(i) + "]." + field
}

/* ===== file names ===== */

func fileName(prefix string, parts ...string) string {
	base := prefix
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			base += "-" + p
		}
	}
	slug := helper.GenerateSlug(base)
	if slug == "" {
		slug = helper.GenerateSlug(prefix)
	}
	return slug + ".pdf"
}
