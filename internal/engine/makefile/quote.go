package makefile

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/taker/internal/core/domain"
	"go.trai.ch/zerr"
)

var makeEscaper = strings.NewReplacer(
	"$", "$$",
	" ", `\ `,
	"\t", "\\\t",
	"#", `\#`,
	":", `\:`,
	"%", `\%`,
)

// quote shell-quotes a single word. A leading "#" would start a shell
// comment, so it is escaped as well.
func quote(word string) string {
	q := shellquote.Join(word)
	if strings.HasPrefix(q, "#") {
		q = `\` + q
	}
	return q
}

// quoteRecipe shell-quotes a word and escapes "$" so make passes it to the
// shell unchanged.
func quoteRecipe(word string) string {
	return strings.ReplaceAll(quote(word), "$", "$$")
}

// makeWord escapes a target or prerequisite name for a rule header or
// directive. Make has no escape for line breaks or NUL.
func makeWord(word string) (string, error) {
	if strings.ContainsAny(word, "\n\r\x00") {
		return "", zerr.With(domain.ErrInvalidPath, "path", strconv.Quote(word))
	}
	return makeEscaper.Replace(word), nil
}

func makeWords(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		escaped, err := makeWord(w)
		if err != nil {
			return nil, err
		}
		out = append(out, escaped)
	}
	return out, nil
}
