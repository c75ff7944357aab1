// Package sanitize 渲染帖子正文前的 HTML 过滤
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// AllowedTags 只允许行内格式化标签，不允许任何属性
var AllowedTags = []string{"b", "strong", "i", "em", "u", "br"}

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func inlinePolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.NewPolicy()
		policy.AllowElements(AllowedTags...)
	})
	return policy
}

// PostContent 过滤正文，白名单外的标签被剥离但保留其文本
func PostContent(html string) string {
	return inlinePolicy().Sanitize(html)
}
