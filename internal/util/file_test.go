package util_test

import (
	"bytes"
	"strings"
	"testing"

	"lms_backend/internal/util"
)

func TestValidateMimeType(t *testing.T) {
	// %PDF magic followed by padding
	pdf := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{' '}, 64)...)

	mime, err := util.ValidateMimeType(bytes.NewReader(pdf), []string{util.MimePDF})
	if err != nil {
		t.Fatalf("ValidateMimeType(pdf): %v", err)
	}
	if mime != "application/pdf" {
		t.Errorf("mime = %q, want application/pdf", mime)
	}

	if _, err := util.ValidateMimeType(strings.NewReader("plain text"), []string{util.MimeImage}); err == nil {
		t.Error("ValidateMimeType accepted text as an image")
	}
}

func TestIsImageIsVideo(t *testing.T) {
	if !util.IsImage("image/png") || util.IsImage("video/mp4") {
		t.Error("IsImage misclassified")
	}
	if !util.IsVideo("video/mp4") || !util.IsVideo("application/x-mpegURL") || util.IsVideo("image/png") {
		t.Error("IsVideo misclassified")
	}
}
