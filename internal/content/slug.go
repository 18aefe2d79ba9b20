package content

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// cyrillicTranslit maps lowercase Cyrillic letters to their Latin transliteration.
//
// Hard and soft signs drop out entirely.
var cyrillicTranslit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// stripMarks decomposes input and removes combining marks, so accented Latin
// characters fold to their ASCII base (é -> e).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe identifier from a display title.
//
// The result contains only lowercase ASCII letters, digits, and hyphens:
// whitespace and punctuation runs collapse into single hyphens, leading and
// trailing hyphens are trimmed, Cyrillic input is transliterated, and
// diacritics are stripped. Pure and idempotent; an input with no alphanumeric
// content yields the empty string. Uniqueness against existing records is not
// guaranteed here.
func Slugify(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	pending := false

	write := func(s string) {
		if s == "" {
			return
		}
		if pending && b.Len() > 0 {
			b.WriteByte('-')
		}
		pending = false
		b.WriteString(s)
	}

	for _, r := range strings.ToLower(folded) {
		if repl, ok := cyrillicTranslit[r]; ok {
			write(repl)
			continue
		}

		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			write(string(r))
		default:
			pending = true
		}
	}

	return b.String()
}
