package minio

import (
	"Quill/internal/api/config"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoverObjectName(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	name := CoverObjectName("My Summer Trip!", ".jpg", now)
	assert.Regexp(t, regexp.MustCompile(`^covers/2026/10/my-summer-trip-[0-9a-f]{8}\.jpg$`), name)

	assert.Regexp(t, `^covers/2026/10/cover-[0-9a-f]{8}\.png$`, CoverObjectName("!!!", ".png", now))
	assert.NotEqual(t, CoverObjectName("a", ".png", now), CoverObjectName("a", ".png", now))
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/covers", PublicBase(config.MinIOConfig{PublicEndpoint: "https://cdn.example.com/covers/"}))
	assert.Equal(t, "http://localhost:9000/quill-covers", PublicBase(config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "quill-covers"}))
	assert.Equal(t, "https://s3.local/b", PublicBase(config.MinIOConfig{Endpoint: "s3.local", Bucket: "b", UseSSL: true}))
}
