// Package format renders amounts, dates and countdowns for display. Number
// and symbol rules come from golang.org/x/text; localized weekday and month
// names come from goodsign/monday.
package format

import (
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

type localeRules struct {
	tag language.Tag
	// numeric day/month/year layout
	date string
	// weekday, date and time layout for the "as of" label
	dateTime string
	// currency symbol trails the number, separated by a space
	symbolAfter bool
}

var supported = []localeRules{
	{tag: language.AmericanEnglish, date: "1/2/2006", dateTime: "Mon, Jan 2, 2006, 3:04 PM"},
	{tag: language.BritishEnglish, date: "02/01/2006", dateTime: "Mon, 2 Jan 2006, 15:04"},
	{tag: language.EuropeanPortuguese, date: "02/01/2006", dateTime: "Mon, 2 Jan 2006, 15:04", symbolAfter: true},
	{tag: language.BrazilianPortuguese, date: "02/01/2006", dateTime: "Mon, 2 Jan 2006, 15:04"},
	{tag: language.German, date: "2.1.2006", dateTime: "Mon, 2. Jan 2006, 15:04", symbolAfter: true},
	{tag: language.French, date: "02/01/2006", dateTime: "Mon 2 Jan 2006, 15:04", symbolAfter: true},
	{tag: language.Spanish, date: "2/1/2006", dateTime: "Mon, 2 Jan 2006, 15:04", symbolAfter: true},
	{tag: language.Italian, date: "2/1/2006", dateTime: "Mon 2 Jan 2006, 15:04", symbolAfter: true},
}

// fallback is used when a locale matches nothing in supported.
var fallback = localeRules{tag: language.Und, date: "2006-01-02", dateTime: "Mon, 2006-01-02 15:04"}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, r := range supported {
		tags[i] = r.tag
	}
	return language.NewMatcher(tags)
}

// rulesFor resolves a BCP 47 locale string such as "pt-PT" to its rules.
func rulesFor(locale string) (localeRules, language.Tag) {
	tag, err := language.Parse(locale)
	if err != nil {
		return fallback, language.Und
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return fallback, tag
	}
	return supported[idx], tag
}

// mondayLocale maps "pt-PT" to monday's "pt_PT" form.
func mondayLocale(tag language.Tag) monday.Locale {
	base, _ := tag.Base()
	region, _ := tag.Region()
	return monday.Locale(strings.ToLower(base.String()) + "_" + strings.ToUpper(region.String()))
}
