package seeds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/phish-trainer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()

	zh := c.Seeds(core.LocaleZH)
	en := c.Seeds(core.LocaleEN)
	assert.Len(t, zh, 15)
	assert.Len(t, en, 12)
	require.NoError(t, validate(zh))
	require.NoError(t, validate(en))

	phishing := 0
	for _, s := range en {
		if s.Type.IsPhishing() {
			phishing++
		}
	}
	assert.Equal(t, 8, phishing)
}

func TestSeedsReturnsCopy(t *testing.T) {
	c := Builtin()
	list := c.Seeds(core.LocaleEN)
	list[0].Hint = "changed"

	assert.NotEqual(t, "changed", c.Seeds(core.LocaleEN)[0].Hint)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_OverridesOneLocale(t *testing.T) {
	path := writeFile(t, `
en:
  - id: 1
    type: phishing
    hint: Fake parking fine
  - id: 2
    type: normal
    hint: Kitchen cleaning roster
`)

	c, err := LoadFile(path)
	require.NoError(t, err)

	en := c.Seeds(core.LocaleEN)
	require.Len(t, en, 2)
	assert.Equal(t, "Fake parking fine", en[0].Hint)
	assert.Equal(t, core.SeedNormal, en[1].Type)
	assert.Len(t, c.Seeds(core.LocaleZH), 15)
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown locale": "fr:\n  - {id: 1, type: phishing, hint: x}\n",
		"bad type":       "en:\n  - {id: 1, type: spam, hint: x}\n",
		"empty hint":     "en:\n  - {id: 1, type: normal, hint: \"\"}\n",
		"duplicate id":   "en:\n  - {id: 1, type: normal, hint: a}\n  - {id: 1, type: normal, hint: b}\n",
		"empty list":     "en: []\n",
		"not yaml":       "en: [unterminated\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
