package email

import (
	"testing"
	"time"

	"github.com/deppfellow/schoolapp/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{}, &logger)
	c.TemplateDir = "../../../templates/emails"
	return c
}

func TestNewClient_Defaults(t *testing.T) {
	c := newTestClient()

	assert.Nil(t, c.client)
	assert.Equal(t, defaultFrom, c.from)
}

func TestRenderPreview(t *testing.T) {
	c := newTestClient()

	require.Equal(t, []Template{TemplateTeacherChanged}, PreviewTemplates())
	for _, name := range PreviewTemplates() {
		html, err := c.RenderPreview(name)
		require.NoError(t, err, name)
		assert.Contains(t, html, "Papadopoulou")
		assert.Contains(t, html, "#42")
	}

	_, err := c.RenderPreview("welcome")
	assert.ErrorContains(t, err, `no preview data for email template "welcome"`)
}

func TestTeacherChangedSubject(t *testing.T) {
	assert.Equal(t, "Teacher Updated: #42", teacherChangedSubject(TeacherChange{Event: "updated", TeacherID: 42}))
	assert.Equal(t, "Teacher Created: #7", teacherChangedSubject(TeacherChange{Event: "created", TeacherID: 7}))
}

func TestRender_MissingTemplate(t *testing.T) {
	c := newTestClient()

	_, err := c.Render("does_not_exist", nil)
	assert.ErrorContains(t, err, "failed to parse email template does_not_exist")
}

func TestSendTeacherChangedEmail_WithoutAPIKey(t *testing.T) {
	c := newTestClient()

	err := c.SendTeacherChangedEmail("registry@school.example", TeacherChange{
		Event:      "created",
		TeacherID:  7,
		Firstname:  "Anna",
		Lastname:   "Georgiou",
		OccurredAt: time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
}
