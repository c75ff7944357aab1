package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline tags kept", "<b>a</b><strong>b</strong><i>c</i><em>d</em><u>e</u>f<br/>", "<b>a</b><strong>b</strong><i>c</i><em>d</em><u>e</u>f<br/>"},
		{"script removed", `hi<script>alert(1)</script>`, "hi"},
		{"block tags stripped", "<p>para</p><div>div</div>", "paradiv"},
		{"attributes dropped", `<b onclick="x()">bold</b>`, "<b>bold</b>"},
		{"links stripped", `<a href="javascript:alert(1)">link</a>`, "link"},
		{"images removed", `<img src=x onerror=alert(1)>text`, "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostContent(tt.in))
		})
	}
}
