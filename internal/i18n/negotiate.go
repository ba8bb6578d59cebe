package i18n

import (
	"golang.org/x/text/language"
)

// Negotiate, etkin dili seçer: önce tercih çerezi, sonra Accept-Language başlığı,
// en son varsayılan dil.
func Negotiate(cookieValue, acceptLanguage string, fallback Locale) Locale {
	if locale, err := ParseLocale(cookieValue); err == nil {
		return locale
	}

	if acceptLanguage != "" {
		// Etiketler q değerine göre sıralı gelir
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil {
			for _, tag := range tags {
				base, _ := tag.Base()
				if locale := Locale(base.String()); IsValid(locale) {
					return locale
				}
			}
		}
	}

	if IsValid(fallback) {
		return fallback
	}
	return DefaultLocale
}

// Tag, dilin x/text etiketini döndürür
func (l Locale) Tag() language.Tag {
	switch l {
	case TR:
		return language.Turkish
	default:
		return language.AmericanEnglish
	}
}
