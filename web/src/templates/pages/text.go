package pages

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upperCaser = cases.Upper(language.English)

func upper(s string) string {
	return upperCaser.String(s)
}
