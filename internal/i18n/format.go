package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/message"
)

// FormatCurrency, tutarı dilin para birimiyle biçimlendirir (tr: TRY, en: USD)
func FormatCurrency(amount float64, locale Locale) string {
	p := message.NewPrinter(locale.Tag())
	switch locale {
	case TR:
		return "₺" + p.Sprintf("%.2f", amount)
	default:
		return "$" + p.Sprintf("%.2f", amount)
	}
}

// FormatPrice, dile uygun tutarı seçip biçimlendirir: Türkçede TL, İngilizcede dolar fiyatı
func FormatPrice(usd, try float64, locale Locale) string {
	if locale == TR {
		return FormatCurrency(try, TR)
	}
	return FormatCurrency(usd, EN)
}

// FormatDate, tarihi uzun biçimde yazar (tr: "2 Ocak 2025", en: "January 2, 2025")
func (b *Bundle) FormatDate(t time.Time, locale Locale) string {
	month := b.T(locale).Months[t.Month()-1]
	if locale == TR {
		return fmt.Sprintf("%d %s %d", t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
}
