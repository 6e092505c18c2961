package main

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// titleCase renders a category name as a display label.
func titleCase(category string) string {
	return titleCaser.String(category)
}
