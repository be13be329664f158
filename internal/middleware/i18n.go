// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware picks the first supported language from Accept-Language.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", ParseLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// ParseLanguage handles headers like "uk-UA,uk;q=0.9,en;q=0.8".
func ParseLanguage(header, defaultLang string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.Split(part, ";")[0]))
		switch {
		case tag == "uk" || strings.HasPrefix(tag, "uk-") || strings.HasPrefix(tag, "uk_"):
			return "uk"
		case tag == "en" || strings.HasPrefix(tag, "en-") || strings.HasPrefix(tag, "en_"):
			return "en"
		}
	}
	return defaultLang
}
