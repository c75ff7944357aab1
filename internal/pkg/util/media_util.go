package util

import (
	"Quill/internal/pkg/consts"
	"net/http"
	"path/filepath"
	"strings"
)

// 封面允许的图片类型及对应扩展名
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// DetectImageType 根据文件头嗅探图片类型，不信任客户端声明的 Content-Type
func DetectImageType(head []byte) (mimeType string, ext string, ok bool) {
	mimeType = http.DetectContentType(head)
	if !strings.HasPrefix(mimeType, consts.MimePrefixImage) {
		return mimeType, "", false
	}
	ext, ok = imageExtensions[mimeType]
	return mimeType, ext, ok
}

// BaseName 去掉路径与扩展名
func BaseName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
