package gcp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorSystemPrompt(t *testing.T) {
	prompt := TranslatorSystemPrompt("French - Français", false)
	assert.Contains(t, prompt, "from English to French - Français.")
	assert.Contains(t, prompt, "5. Use natural, fluent French - Français")
	assert.Contains(t, prompt, "10. Use appropriate formal register")
	assert.NotContains(t, prompt, "is written right-to-left")
	assert.NotContains(t, prompt, "%!")

	rtl := TranslatorSystemPrompt("Arabic - العربية", true)
	assert.Contains(t, rtl, "Arabic - العربية is written right-to-left")
	assert.True(t, strings.HasSuffix(rtl, "preserving all formatting."))
}

func TestTranslatorUserPrompt(t *testing.T) {
	assert.Equal(t,
		"Please translate this complete legal document analysis to German - Deutsch:\n\n# Hello",
		TranslatorUserPrompt("German - Deutsch", "# Hello"))
}
