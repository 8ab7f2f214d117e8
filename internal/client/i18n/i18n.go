// Package i18n holds the user-facing notification strings. Vietnamese is
// the default locale; English is available for the CLI.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. They double as the English text.
const (
	RegisterFailed    = "Registration failed"
	VerifyFailed      = "Verification failed"
	VerifySucceeded   = "Verification succeeded"
	TryAgainLater     = "Something went wrong. Please try again later."
	DefaultLocaleName = "vi"
)

var (
	supported = []language.Tag{language.Vietnamese, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Vietnamese))

	vi := map[string]string{
		RegisterFailed:  "Đăng ký không thành công",
		VerifyFailed:    "Xác thực không thành công",
		VerifySucceeded: "Xác thực thành công",
		TryAgainLater:   "Có lỗi xảy ra. Vui lòng thử lại sau.",
	}
	for key, text := range vi {
		_ = b.SetString(language.Vietnamese, key, text)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// Translator renders message keys in one locale.
type Translator struct {
	p *message.Printer
}

// New returns a Translator for locale (a BCP 47 tag such as "vi" or "en").
// Unknown or unsupported locales fall back to Vietnamese.
func New(locale string) *Translator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		idx = 0
	}
	return &Translator{p: message.NewPrinter(supported[idx], message.Catalog(cat))}
}

// T renders key.
func (t *Translator) T(key string) string {
	return t.p.Sprintf(key)
}
