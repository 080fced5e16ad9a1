package locale

import (
	"github.com/mikey/phish-trainer/internal/core"
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.Chinese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Resolve picks the locale for a request. An explicit param wins, then the
// Accept-Language header, then def.
func Resolve(param, acceptLanguage string, def core.Locale) core.Locale {
	if param != "" {
		if l, err := core.ParseLocale(param); err == nil {
			return l
		}
		if l, ok := match(param); ok {
			return l
		}
	}

	if acceptLanguage != "" {
		if l, ok := match(acceptLanguage); ok {
			return l
		}
	}

	return def
}

func match(raw string) (core.Locale, bool) {
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}

	if index == 0 {
		return core.LocaleZH, true
	}
	return core.LocaleEN, true
}
