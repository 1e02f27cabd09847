package text

import (
	"strings"

	"github.com/kr/text"
)

// BulletIndent prefixes the first line of s with bullet and indents the remaining lines so
// they line up under the first.
func BulletIndent(bullet string, s string) string {
	indent := strings.Repeat(" ", len(bullet))
	return bullet + strings.TrimPrefix(Indent(s, indent), indent)
}

// Indent prefixes every line of s with indent.
func Indent(s, indent string) string {
	if s == "" {
		return indent
	}
	return text.Indent(s, indent)
}
