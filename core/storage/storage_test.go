package storage

import (
	"regexp"
	"testing"

	"castle-admin/core/config"

	"github.com/stretchr/testify/assert"
)

func TestServiceImageKey(t *testing.T) {
	key := ServiceImageKey("Princess Castle XL", "Photo.JPG")

	pattern := regexp.MustCompile(`^services/princess-castle-xl-[0-9a-f-]{36}\.jpg$`)
	assert.Regexp(t, pattern, key)
}

func TestServiceImageKeyEmptyName(t *testing.T) {
	assert.Regexp(t, `^services/service-`, ServiceImageKey("", "a.png"))
}

func TestPublicURL(t *testing.T) {
	u := NewS3Uploader(config.S3Config{Bucket: "castles", Region: "eu-west-2", PublicBaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/services/a.png", u.PublicURL("services/a.png"))

	u = NewS3Uploader(config.S3Config{Bucket: "castles", Region: "eu-west-2"})
	assert.Equal(t, "https://castles.s3.amazonaws.com/services/a.png", u.PublicURL("services/a.png"))
}
