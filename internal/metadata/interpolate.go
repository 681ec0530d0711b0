package metadata

import (
	"regexp"
	"strings"
	"sync"
)

var tokenPatterns sync.Map // scope name -> *regexp.Regexp

var anyToken = regexp.MustCompile(`\{\{\s*[\w-]+(?:\.[\w-]+)+\s*\}\}`)

// ReplaceTokens calls fn for every `{{ scope.path }}` token in s, whatever
// its scope, and substitutes the result.
func ReplaceTokens(s string, fn func(token string) string) string {
	return anyToken.ReplaceAllStringFunc(s, fn)
}

func tokenPattern(scope string) *regexp.Regexp {
	if re, ok := tokenPatterns.Load(scope); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\{\{\s*` + regexp.QuoteMeta(scope) + `\.([\w-]+(?:\.[\w-]+)*)\s*\}\}`)
	actual, _ := tokenPatterns.LoadOrStore(scope, re)
	return actual.(*regexp.Regexp)
}

// Interpolate replaces every `{{ scope.a.b }}` token in content with the
// stringified value found at a.b in data, or "" when the path does not
// resolve. Tokens are handled in document order and each one replaces the
// first remaining occurrence of its literal text.
func Interpolate(content, scope string, data any) string {
	matches := tokenPattern(scope).FindAllStringSubmatch(content, -1)
	for _, m := range matches {
		var replacement string
		if v, ok := Lookup(data, strings.Split(m[1], ".")); ok {
			replacement = Stringify(v)
		}
		content = strings.Replace(content, m[0], replacement, 1)
	}
	return content
}
