package routes

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func imageHeader(name, contentType string, size int64) *multipart.FileHeader {
	h := &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
	if contentType != "" {
		h.Header.Set("Content-Type", contentType)
	}
	return h
}

func TestValidateImageFile(t *testing.T) {
	cases := []struct {
		name   string
		header *multipart.FileHeader
		want   bool
	}{
		{"jpeg accepted", imageHeader("before.jpg", "image/jpeg", 1 << 20), true},
		{"png accepted", imageHeader("after.png", "image/png", 2 << 20), true},
		{"webp accepted", imageHeader("skin.webp", "image/webp", 100), true},
		{"pdf rejected", imageHeader("report.pdf", "application/pdf", 1 << 20), false},
		{"pdf with image extension rejected", imageHeader("report.jpg", "application/pdf", 1 << 20), false},
		{"missing content type rejected", imageHeader("before.jpg", "", 1 << 20), false},
		{"oversize rejected", imageHeader("huge.jpg", "image/jpeg", 6 << 20), false},
		{"empty rejected", imageHeader("empty.jpg", "image/jpeg", 0), false},
		{"nil rejected", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validateImageFile(tc.header); got != tc.want {
				t.Errorf("validateImageFile = %v, want %v", got, tc.want)
			}
		})
	}
}
