// Package i18n 提供后台接口提示文案的多语言翻译（老挝语为默认语言）。
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// LocaleLao 老挝语
	LocaleLao = "lo-LA"
	// LocaleEnglish 英语
	LocaleEnglish = "en-US"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleLao
)

var supportedTags = []language.Tag{
	language.MustParse(LocaleLao),
	language.MustParse(LocaleEnglish),
}

var matcher = language.NewMatcher(supportedTags)

// T 翻译文案 key，缺失时回退到默认语言，再缺失则返回 key 本身
func T(locale, key string) string {
	if msgs, ok := catalog[normalizeLocale(locale)]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 从请求中解析语言：?lang= 优先，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return normalizeLocale(lang)
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}

func normalizeLocale(locale string) string {
	raw := strings.TrimSpace(locale)
	if raw == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}
