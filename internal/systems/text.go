package systems

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Russian, cases.NoLower)

// capitalize делает заглавной первую букву первого слова: имена монстров
// хранятся строчными ("гоблин"), а в журнале стоят в начале фразы.
func capitalize(s string) string {
	first, rest, found := strings.Cut(s, " ")
	out := titleCaser.String(first)
	if found {
		out += " " + rest
	}
	return out
}
