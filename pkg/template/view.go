package template

// PartView is a flat, encoder-friendly record of one part.
type PartView struct {
	Kind     string `json:"kind" yaml:"kind" toml:"kind"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Key      string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Align    string `json:"align,omitempty" yaml:"align,omitempty" toml:"align,omitempty"`
	Width    *int   `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Truncate bool   `json:"truncate,omitempty" yaml:"truncate,omitempty" toml:"truncate,omitempty"`
	Style    string `json:"style,omitempty" yaml:"style,omitempty" toml:"style,omitempty"`
	AltStyle string `json:"alt_style,omitempty" yaml:"alt_style,omitempty" toml:"alt_style,omitempty"`
}

// View flattens a single part.
func View(p Part) PartView {
	v := PartView{Kind: p.Kind().String()}
	switch p := p.(type) {
	case Literal:
		v.Text = p.Text
	case Placeholder:
		v.Key = p.Key
		v.Align = p.Align.String()
		v.Width = p.Width
		v.Truncate = p.Truncate
		if p.Style != nil {
			v.Style = p.Style.String()
		}
		if p.AltStyle != nil {
			v.AltStyle = p.AltStyle.String()
		}
	}
	return v
}

// Views flattens every part of t.
func (t *Template) Views() []PartView {
	views := make([]PartView, 0, len(t.parts))
	for _, p := range t.parts {
		views = append(views, View(p))
	}
	return views
}
