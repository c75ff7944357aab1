package util

import (
	"Quill/internal/pkg/consts"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText 提取 HTML 中的纯文本并压缩空白
func HTMLToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script,style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt 纯文本摘要，按字符截断
func Excerpt(html string, limit int) string {
	text := HTMLToText(html)
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}

// ValidID 标识符不能为空、不含空白且不超过 UUID 长度
func ValidID(id string) bool {
	if id == "" || len(id) > consts.MaxIDLength {
		return false
	}
	return !strings.ContainsAny(id, " \t\r\n/")
}

// PtrStr 用于将 string 转换为 *string
func PtrStr(s string) *string {
	return &s
}

// PtrFloat32 用于将 float32 转换为 *float32
func PtrFloat32(f float32) *float32 {
	return &f
}
