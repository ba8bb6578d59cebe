// Package i18n, vitrinin desteklediği diller için tipli çeviri kayıtlarını,
// dil seçimini ve para/tarih biçimlendirmesini sağlar.
//
// Çeviriler derleme sırasında gömülen YAML dosyalarından okunur ve
// uygulama açılırken doğrulanır; eksik ya da bilinmeyen bir anahtar
// sunucunun başlamasını engeller.
package i18n

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locale, desteklenen dil kimliğidir
type Locale string

const (
	TR Locale = "tr"
	EN Locale = "en"
)

// DefaultLocale, hiçbir tercih bulunamadığında kullanılan dildir
const DefaultLocale = EN

// Locales, desteklenen dillerdir
var Locales = []Locale{TR, EN}

// ErrInvalidLocale, desteklenmeyen bir dil istendiğinde döner
var ErrInvalidLocale = errors.New("desteklenmeyen dil")

//go:embed locales/*.yaml
var localeFiles embed.FS

// CategoryLabels, statik kategori eşlemesinin çevrilmiş adlarıdır
type CategoryLabels struct {
	Electronics    string `yaml:"electronics"`
	Jewelery       string `yaml:"jewelery"`
	MensClothing   string `yaml:"mensClothing"`
	WomensClothing string `yaml:"womensClothing"`
}

// Messages, API yanıtlarında kullanılan metinlerdir
type Messages struct {
	InvalidRequest   string `yaml:"invalidRequest"`
	ProductNotFound  string `yaml:"productNotFound"`
	PageNotFound     string `yaml:"pageNotFound"`
	AddedToCart      string `yaml:"addedToCart"`
	CartUpdated      string `yaml:"cartUpdated"`
	RemovedFromCart  string `yaml:"removedFromCart"`
	CartCleared      string `yaml:"cartCleared"`
	Unauthorized     string `yaml:"unauthorized"`
	CacheInvalidated string `yaml:"cacheInvalidated"`
	LocaleChanged    string `yaml:"localeChanged"`
	InvalidLocale    string `yaml:"invalidLocale"`
}

// Translations, bir dilin sabit biçimli çeviri kaydıdır
type Translations struct {
	Language   string         `yaml:"language"`
	Flag       string         `yaml:"flag"`
	Categories CategoryLabels `yaml:"categories"`
	Months     []string       `yaml:"months"`
	Messages   Messages       `yaml:"messages"`
}

// Bundle, tüm dillerin doğrulanmış çevirilerini tutar
type Bundle struct {
	translations map[Locale]*Translations
}

// Load, gömülü çeviri dosyalarını okur ve doğrular
func Load() (*Bundle, error) {
	b := &Bundle{translations: make(map[Locale]*Translations, len(Locales))}

	for _, locale := range Locales {
		data, err := localeFiles.ReadFile("locales/" + string(locale) + ".yaml")
		if err != nil {
			return nil, fmt.Errorf("%s çevirisi okunamadı: %w", locale, err)
		}
		t, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s çevirisi geçersiz: %w", locale, err)
		}
		b.translations[locale] = t
	}
	return b, nil
}

func decode(data []byte) (*Translations, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var t Translations
	if err := dec.Decode(&t); err != nil {
		return nil, err
	}
	if len(t.Months) != 12 {
		return nil, fmt.Errorf("months: 12 ay bekleniyordu, %d bulundu", len(t.Months))
	}
	if missing := missingFields(reflect.ValueOf(t), ""); len(missing) > 0 {
		return nil, fmt.Errorf("eksik çeviri anahtarları: %s", strings.Join(missing, ", "))
	}
	return &t, nil
}

// missingFields, boş bırakılmış tüm metin alanlarının yollarını döndürür
func missingFields(v reflect.Value, prefix string) []string {
	var missing []string
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			name := v.Type().Field(i).Tag.Get("yaml")
			if prefix != "" {
				name = prefix + "." + name
			}
			missing = append(missing, missingFields(v.Field(i), name)...)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			missing = append(missing, missingFields(v.Index(i), fmt.Sprintf("%s[%d]", prefix, i))...)
		}
	case reflect.String:
		if strings.TrimSpace(v.String()) == "" {
			missing = append(missing, prefix)
		}
	}
	return missing
}

// T, dilin çevirilerini döndürür; bilinmeyen dilde varsayılan dile düşer
func (b *Bundle) T(locale Locale) *Translations {
	if t, ok := b.translations[locale]; ok {
		return t
	}
	return b.translations[DefaultLocale]
}

// ParseLocale, metni desteklenen bir dile çevirir
func ParseLocale(raw string) (Locale, error) {
	locale := Locale(strings.ToLower(strings.TrimSpace(raw)))
	if !IsValid(locale) {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, raw)
	}
	return locale, nil
}

// IsValid, dilin desteklenip desteklenmediğini söyler
func IsValid(locale Locale) bool {
	for _, l := range Locales {
		if l == locale {
			return true
		}
	}
	return false
}
