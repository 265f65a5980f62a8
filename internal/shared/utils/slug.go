package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"
)

var (
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatHyphens = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a url-safe id fragment:
// "Renée O'Brien" -> "renee-obrien"
func GenerateSlug(input string) string {
	s := strings.ToLower(RemoveDiacritics(strings.TrimSpace(input)))
	s = strings.Join(strings.Fields(s), "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ø': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ý': 'y', 'ÿ': 'y', 'ñ': 'n', 'ç': 'c',
	'Á': 'A', 'À': 'A', 'Â': 'A', 'Ä': 'A', 'Ã': 'A', 'Å': 'A',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I',
	'Ó': 'O', 'Ò': 'O', 'Ô': 'O', 'Ö': 'O', 'Õ': 'O', 'Ø': 'O',
	'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U',
	'Ý': 'Y', 'Ñ': 'N', 'Ç': 'C',
}

// RemoveDiacritics folds common Latin accented letters to ASCII
func RemoveDiacritics(input string) string {
	return strings.Map(func(r rune) rune {
		if base, ok := diacritics[r]; ok {
			return base
		}
		return r
	}, input)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSuffix returns n random base36 characters
func RandomSuffix(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(base36[idx.Int64()])
	}
	return b.String(), nil
}
