package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
)

func TestContentType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	cases := []struct {
		name     string
		declared string
		data     []byte
		want     string
	}{
		{name: "declared", declared: "image/jpeg", want: "image/jpeg"},
		{name: "declared with params", declared: "Image/PNG; charset=binary", want: "image/png"},
		{name: "declared non-image wins", declared: "application/pdf", data: png, want: "application/pdf"},
		{name: "sniffed", data: png, want: "image/png"},
		{name: "nothing", want: "application/octet-stream"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContentType(tc.declared, tc.data); got != tc.want {
				t.Fatalf("ContentType(%q) = %q, want %q", tc.declared, got, tc.want)
			}
		})
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("image/webp") || IsImage("text/plain") || IsImage("") {
		t.Fatalf("unexpected IsImage results")
	}
}

func TestReadFileStopsAfterLimit(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "big.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(bytes.Repeat([]byte{1}, 100))
	w.Close()

	req, _ := http.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}

	data, err := ReadFile(req.MultipartForm.File["file"][0], 10)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if len(data) != 11 {
		t.Fatalf("expected limit+1 bytes, got %d", len(data))
	}
}
