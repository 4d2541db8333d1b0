package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer resolves string keys for one locale.
type Localizer struct {
	locale   string
	printer  *message.Printer
	base     *message.Printer
	messages map[string]string
	fallback map[string]string
}

// Localizer returns a Localizer for the best match of locale.
func (b *Bundle) Localizer(locale string) *Localizer {
	matched := b.Match(locale)
	return &Localizer{
		locale:   matched,
		printer:  message.NewPrinter(language.MustParse(matched), message.Catalog(b.cat)),
		base:     message.NewPrinter(language.MustParse(BaseLocale), message.Catalog(b.cat)),
		messages: b.locales[matched],
		fallback: b.locales[BaseLocale],
	}
}

// Locale returns the locale strings are resolved in.
func (l *Localizer) Locale() string {
	return l.locale
}

// String returns the message for key in the localizer's locale, then in
// BaseLocale. Unknown keys render as [[key]].
func (l *Localizer) String(key string) string {
	if _, ok := l.messages[key]; ok {
		return l.printer.Sprintf(key)
	}
	if _, ok := l.fallback[key]; ok {
		return l.base.Sprintf(key)
	}
	return "[[" + key + "]]"
}
