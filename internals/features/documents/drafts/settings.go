package drafts

const (
	LangEN = "en"
	LangBN = "bn"
)

// Layouts are the supported copies-per-page tilings.
var Layouts = []int{1, 2, 4, 9}

// TemplateSettings are presentation flags, independent of document content.
type TemplateSettings struct {
	Layout        int    `json:"layout" validate:"omitempty,oneof=1 2 4 9"`
	Language      string `json:"language" validate:"omitempty,oneof=en bn"`
	ShowLogo      bool   `json:"showLogo"`
	ShowBorder    bool   `json:"showBorder"`
	ShowWatermark bool   `json:"showWatermark"`
	WatermarkText string `json:"watermarkText,omitempty" validate:"max=40"`
	ShowSignature bool   `json:"showSignature"`
	PrimaryColor  string `json:"primaryColor,omitempty" validate:"omitempty,hexcolor"`
}

func DefaultSettings() TemplateSettings {
	return TemplateSettings{
		Layout:        1,
		Language:      LangEN,
		ShowLogo:      true,
		ShowBorder:    true,
		ShowSignature: true,
		PrimaryColor:  "#1f4e79",
	}
}

// Normalize replaces unsupported values with defaults.
func (s TemplateSettings) Normalize() TemplateSettings {
	def := DefaultSettings()
	if !validLayout(s.Layout) {
		s.Layout = def.Layout
	}
	if s.Language != LangBN {
		s.Language = LangEN
	}
	if s.PrimaryColor == "" {
		s.PrimaryColor = def.PrimaryColor
	}
	if s.ShowWatermark && s.WatermarkText == "" {
		s.WatermarkText = "COPY"
	}
	return s
}

func (s TemplateSettings) Validate() error {
	return validateStruct(s).orNil()
}

func validLayout(n int) bool {
	for _, l := range Layouts {
		if l == n {
			return true
		}
	}
	return false
}
