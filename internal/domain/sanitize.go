package domain

import (
	"regexp"
	"strings"
)

// phonePattern применяется к телефону после удаления разделителей.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// phoneSeparators символы, допустимые в телефоне, но не несущие смысла.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// SanitizeText обрезает пробелы по краям и усекает строку до maxLen рун.
func SanitizeText(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}
	return s
}

// ValidPhone проверяет телефон после удаления разделителей:
// опциональный плюс и 7..15 цифр.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(phone))
}
