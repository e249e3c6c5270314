// Package i18n holds the user-facing strings of every supported language
// and picks one from saved preferences or the environment.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/julianstephens/weekly/internal/models"
)

type Lang string

const (
	Korean   Lang = "ko"
	English  Lang = "en"
	Japanese Lang = "ja"
	Chinese  Lang = "zh"
	Spanish  Lang = "es"
)

// Fallback is used when neither a saved preference nor the environment
// names a supported language.
const Fallback = English

// Supported lists languages in menu order.
var Supported = []Lang{Korean, English, Japanese, Chinese, Spanish}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Korean,
	language.Japanese,
	language.Chinese,
	language.Spanish,
})

var matcherLangs = []Lang{English, Korean, Japanese, Chinese, Spanish}

// Valid reports whether l has a catalog.
func (l Lang) Valid() bool {
	_, ok := catalogs[l]
	return ok
}

// Name returns the language's name in that language.
func (l Lang) Name() string {
	if c, ok := catalogs[l]; ok {
		return c.LanguageName
	}
	return string(l)
}

// Next returns the language after l in Supported order, wrapping around.
func (l Lang) Next() Lang {
	for i, s := range Supported {
		if s == l {
			return Supported[(i+1)%len(Supported)]
		}
	}
	return Supported[0]
}

// ParseLang accepts a language code or locale such as "ja", "es-MX" or
// "ko_KR.UTF-8".
func ParseLang(s string) (Lang, error) {
	if l, ok := match(s); ok {
		return l, nil
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Detect returns the saved language when valid, then the first supported
// locale among env values (LC_ALL, LC_MESSAGES, LANG order), then Fallback.
func Detect(saved string, env ...string) Lang {
	if l := Lang(saved); l.Valid() {
		return l
	}
	for _, v := range env {
		if l, ok := match(v); ok {
			return l
		}
	}
	return Fallback
}

func match(locale string) (Lang, bool) {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", false
	}
	return matcherLangs[idx], true
}

// Catalog renders strings for one language.
type Catalog struct {
	lang Lang
	m    *Messages
}

// New returns the catalog for lang, or the Fallback catalog when lang is
// unknown.
func New(lang Lang) *Catalog {
	m, ok := catalogs[lang]
	if !ok {
		lang = Fallback
		m = catalogs[Fallback]
	}
	return &Catalog{lang: lang, m: m}
}

func (c *Catalog) Lang() Lang { return c.lang }

// Messages exposes the raw strings.
func (c *Catalog) Messages() *Messages { return c.m }

// DayShort returns the abbreviated name of d.
func (c *Catalog) DayShort(d models.Day) string {
	if i := d.Index(); i >= 0 {
		return c.m.Days[i]
	}
	return string(d)
}

// DayFull returns the full name of d.
func (c *Catalog) DayFull(d models.Day) string {
	if i := d.Index(); i >= 0 {
		return c.m.DaysFull[i]
	}
	return string(d)
}

// FormatClock renders an HH:MM value on a 12-hour clock. Unparseable input
// is returned unchanged.
func (c *Catalog) FormatClock(hhmm string) string {
	hour, minute, err := models.ParseClock(hhmm)
	if err != nil {
		return hhmm
	}
	marker := c.m.AM
	if hour >= 12 {
		marker = c.m.PM
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	clock := fmt.Sprintf("%d:%02d", display, minute)
	if c.m.MarkerFirst {
		return marker + c.m.MarkerSep + clock
	}
	return clock + c.m.MarkerSep + marker
}

// NotificationBody is the reminder sentence for an activity on day at hhmm.
func (c *Catalog) NotificationBody(day models.Day, hhmm string) string {
	return strings.NewReplacer(
		"{day}", c.DayFull(day),
		"{time}", c.FormatClock(hhmm),
	).Replace(c.m.NotificationBody)
}

// Added is the toast shown after adding an entry to the given days.
func (c *Catalog) Added(days []models.Day) string {
	return c.m.Toast.ScheduleAdded.render(c.dayList(days))
}

// Updated is the toast shown after editing entries on the given days.
func (c *Catalog) Updated(days []models.Day) string {
	return c.m.Toast.ScheduleUpdated.render(c.dayList(days))
}

func (c *Catalog) dayList(days []models.Day) string {
	if len(days) == 1 {
		return c.DayFull(days[0])
	}
	return fmt.Sprintf("%d%s", len(days), c.m.Toast.DayCount)
}

// DayTitle is the heading above a day's entries.
func (c *Catalog) DayTitle(d models.Day) string {
	return c.DayFull(d) + " " + c.m.ScheduleTitle
}
