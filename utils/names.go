package utils

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	MinNameLength = 3
	MaxNameLength = 50
)

var ErrInvalidName = errors.New("invalid character name")

// NormalizeName trims and collapses whitespace and checks the name can be
// turned into a slug.
func NormalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", ErrInvalidName
		}
	}
	if !hasAlnum(unidecode.Unidecode(name)) {
		return "", ErrInvalidName
	}
	return name, nil
}

func hasAlnum(s string) bool {
	for _, r := range s {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return true
		}
	}
	return false
}

// NameSlug is the unique key a character name is stored and searched by.
func NameSlug(name string) string {
	return slug.Make(name)
}

// ClassLabel renders "SORCERER" as "Sorcerer". A Caser keeps state between
// calls, so each call gets its own.
func ClassLabel(class string) string {
	return cases.Title(language.English).String(strings.ToLower(class))
}
