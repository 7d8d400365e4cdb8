package patcher

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToDisplayName turns a snake_case project name into a title: "telecom_app" -> "Telecom App".
func ToDisplayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' })

	return cases.Title(language.English).String(strings.Join(words, " "))
}

// ToAppID strips underscores so the name is usable as an application id segment:
// "telecom_app" -> "telecomapp".
func ToAppID(name string) string {
	return strings.ReplaceAll(name, "_", "")
}

// BundleID is the production application identifier: "<org>.<appid>".
func BundleID(name, org string) string {
	return org + "." + ToAppID(name)
}
