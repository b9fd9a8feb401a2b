package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	data := ToMap(EmailData{Name: "ali", Email: "ali@x.com", AppName: "Acme HRIS", LoginURL: "https://hris.example/login"})

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Acme HRIS", subject)
	assert.Contains(t, text, "Hi ali,")
	assert.Contains(t, text, "https://hris.example/login")
	assert.Contains(t, html, "<strong>ali@x.com</strong>")
	assert.Contains(t, html, `href="https://hris.example/login"`)
}

func TestRenderWelcome_Defaults(t *testing.T) {
	subject, text, html, err := Render(Welcome, map[string]any{"Email": "x@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to HRIS", subject)
	assert.Contains(t, text, "Hi there,")
	assert.NotContains(t, html, "Sign in</a>")
}

func TestRender_EscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, ToMap(EmailData{Name: "<script>", Email: "a@x.com"}))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
