package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateTeacherChanged corresponds to templates/emails/teacher_changed.html
	TemplateTeacherChanged Template = "teacher_changed"
)
