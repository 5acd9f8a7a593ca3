package document

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

var (
	//go:embed templates/work_order.html
	layoutHTML string

	//go:embed templates/work_order.css
	layoutCSS string

	layout = template.Must(template.New("work_order").Parse(layoutHTML))
)

// Styles returns the A4 stylesheet that accompanies the layout
func Styles() string {
	return layoutCSS
}

type layoutData struct {
	View
	InlineCSS template.CSS
}

// RenderHTML renders the document layout for v. Every interpolated value is
// escaped. When inlineStyles is set the stylesheet is embedded in the head.
func RenderHTML(v View, inlineStyles bool) ([]byte, error) {
	data := layoutData{View: v}
	if inlineStyles {
		data.InlineCSS = template.CSS(layoutCSS)
	}
	var buf bytes.Buffer
	if err := layout.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render work order layout: %w", err)
	}
	return buf.Bytes(), nil
}
