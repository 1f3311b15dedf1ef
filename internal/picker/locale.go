package picker

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DateOrder is the order in which day, month and year are presented
type DateOrder int

const (
	OrderDMY DateOrder = iota
	OrderMDY
	OrderYMD
)

// String returns the order as a pattern like "DMY"
func (o DateOrder) String() string {
	switch o {
	case OrderMDY:
		return "MDY"
	case OrderYMD:
		return "YMD"
	default:
		return "DMY"
	}
}

// Locale holds everything the picker derives from the host locale
type Locale struct {
	Tag       language.Tag
	Order     DateOrder
	HourFirst bool
	RTL       bool
	months    [12]string
}

// DefaultLocale is used when a locale string cannot be parsed
var DefaultLocale = language.AmericanEnglish

var monthAbbreviations = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"fr": {"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	"de": {"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	"it": {"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
	"pt": {"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."},
	"nl": {"jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"},
	"ru": {"янв.", "февр.", "март", "апр.", "май", "июнь", "июль", "авг.", "сент.", "окт.", "нояб.", "дек."},
	"ja": {"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
	"zh": {"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
	"ko": {"1월", "2월", "3월", "4월", "5월", "6월", "7월", "8월", "9월", "10월", "11월", "12월"},
	"ar": {"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو", "يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر"},
	"he": {"ינו׳", "פבר׳", "מרץ", "אפר׳", "מאי", "יוני", "יולי", "אוג׳", "ספט׳", "אוק׳", "נוב׳", "דצמ׳"},
}

var (
	mdyRegions = map[string]bool{"US": true, "PH": true, "FM": true, "MH": true, "PR": true}
	ymdRegions = map[string]bool{"CN": true, "JP": true, "KR": true, "TW": true, "HU": true, "LT": true, "MN": true, "CA": true}
	rtlScripts = map[string]bool{"Arab": true, "Hebr": true, "Thaa": true, "Syrc": true, "Nkoo": true, "Adlm": true}
)

// ResolveLocale derives field order, direction and month labels from a
// locale string. POSIX forms such as "en_US.UTF-8" are accepted.
func ResolveLocale(raw string) Locale {
	tag, err := language.Parse(normalizeLocale(raw))
	if err != nil || tag == language.Und {
		tag = DefaultLocale
	}

	base, _ := tag.Base()
	region, _ := tag.Region()
	script, _ := tag.Script()

	l := Locale{
		Tag:       tag,
		Order:     OrderDMY,
		HourFirst: true,
		RTL:       rtlScripts[script.String()],
	}

	switch {
	case mdyRegions[region.String()]:
		l.Order = OrderMDY
	case ymdRegions[region.String()]:
		l.Order = OrderYMD
	}

	months, ok := monthAbbreviations[base.String()]
	if !ok {
		months = monthAbbreviations["en"]
	}
	l.months = months

	return l
}

func normalizeLocale(raw string) string {
	locale := strings.TrimSpace(raw)
	if idx := strings.Index(locale, "."); idx >= 0 {
		locale = locale[:idx]
	}
	if idx := strings.Index(locale, "@"); idx >= 0 {
		locale = locale[:idx]
	}
	return strings.ReplaceAll(locale, "_", "-")
}

// MonthLabel returns the abbreviated month name
func (l Locale) MonthLabel(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	if l.months[0] == "" {
		return monthAbbreviations["en"][m-1]
	}
	return l.months[m-1]
}

// DateFields returns day, month and year in presentation order
func (l Locale) DateFields() []Field {
	switch l.Order {
	case OrderMDY:
		return []Field{FieldMonth, FieldDay, FieldYear}
	case OrderYMD:
		return []Field{FieldYear, FieldMonth, FieldDay}
	default:
		return []Field{FieldDay, FieldMonth, FieldYear}
	}
}

// Fields returns every field the picker shows, date fields first
func (l Locale) Fields(withTime bool) []Field {
	fields := l.DateFields()
	if !withTime {
		return fields
	}
	if l.HourFirst {
		return append(fields, FieldHour, FieldMinute)
	}
	return append(fields, FieldMinute, FieldHour)
}
