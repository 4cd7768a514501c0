package email

import (
	"fmt"
	"sort"
)

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]map[string]string{
	TemplateTeacherChanged: {
		"Event":      "updated",
		"TeacherID":  "42",
		"Firstname":  "Maria",
		"Lastname":   "Papadopoulou",
		"OccurredAt": "Sun, 01 Mar 2026 08:30:00 UTC",
	},
}

// PreviewTemplates lists the templates that have preview data, sorted.
func PreviewTemplates() []Template {
	names := make([]Template, 0, len(PreviewData))
	for name := range PreviewData {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// RenderPreview renders templateName with its sample values.
func (c *Client) RenderPreview(templateName Template) (string, error) {
	data, ok := PreviewData[templateName]
	if !ok {
		return "", fmt.Errorf("no preview data for email template %q", templateName)
	}
	return c.Render(templateName, data)
}
