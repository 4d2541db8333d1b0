package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, []string{"el-GR", "en-US"}, b.Locales())
}

func TestEmbeddedLocalesCoverBaseKeys(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)

	base := b.locales[BaseLocale]
	for _, locale := range b.Locales() {
		for key := range base {
			_, ok := b.locales[locale][key]
			assert.True(t, ok, "%s missing key %q", locale, key)
		}
	}
}

func TestLocalizerString(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)

	en := b.Localizer("en-US")
	assert.Equal(t, "en-US", en.Locale())
	assert.Equal(t, "Receive a passing grade", en.String("completiondetail_pass"))
	assert.Equal(t, "Use up all available attempts", en.String("completiondetail_attemptsexhausted"))

	el := b.Localizer("el-GR")
	assert.Equal(t, "Λάβετε βαθμό επιτυχίας", el.String("completiondetail_pass"))
}

func TestLocalizerMissingKey(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Equal(t, "[[nosuchstring]]", b.Localizer(BaseLocale).String("nosuchstring"))
}

func TestMatch(t *testing.T) {
	b, err := LoadEmbedded()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en-US"},
		{"el-GR", "el-GR"},
		{"el", "el-GR"},
		{"fr-FR", "en-US"},
		{"not a tag!", "en-US"},
		{"", "en-US"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Match(tt.in), tt.in)
	}
}

func TestFallbackToBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en-US/game.yaml": {Data: []byte(`locale: en-US
namespace: game
messages:
  greeting: Hello
  farewell: Goodbye
`)},
		"locales/el-GR/game.yaml": {Data: []byte(`locale: el-GR
namespace: game
messages:
  greeting: Γεια σας
`)},
	}
	b, err := LoadFromFS(fsys)
	require.NoError(t, err)

	el := b.Localizer("el-GR")
	assert.Equal(t, "Γεια σας", el.String("greeting"))
	assert.Equal(t, "Goodbye", el.String("farewell"))
}

func TestLoadFromFSErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "no files",
			fsys: fstest.MapFS{},
		},
		{
			name: "missing base locale",
			fsys: fstest.MapFS{
				"locales/el-GR/game.yaml": {Data: []byte("locale: el-GR\nnamespace: game\nmessages:\n  a: b\n")},
			},
		},
		{
			name: "locale mismatch",
			fsys: fstest.MapFS{
				"locales/en-US/game.yaml": {Data: []byte("locale: el-GR\nnamespace: game\nmessages:\n  a: b\n")},
			},
		},
		{
			name: "namespace mismatch",
			fsys: fstest.MapFS{
				"locales/en-US/game.yaml": {Data: []byte("locale: en-US\nnamespace: quiz\nmessages:\n  a: b\n")},
			},
		},
		{
			name: "missing messages",
			fsys: fstest.MapFS{
				"locales/en-US/game.yaml": {Data: []byte("locale: en-US\nnamespace: game\n")},
			},
		},
		{
			name: "duplicate key across namespaces",
			fsys: fstest.MapFS{
				"locales/en-US/game.yaml":  {Data: []byte("locale: en-US\nnamespace: game\nmessages:\n  a: b\n")},
				"locales/en-US/other.yaml": {Data: []byte("locale: en-US\nnamespace: other\nmessages:\n  a: c\n")},
			},
		},
		{
			name: "invalid yaml",
			fsys: fstest.MapFS{
				"locales/en-US/game.yaml": {Data: []byte("locale: [\n")},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fsys)
			assert.Error(t, err)
		})
	}
}
