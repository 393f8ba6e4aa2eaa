package handlers

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImageHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("product_image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["product_image"][0]
}

func encodedImage(t *testing.T, format string) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	buf := &bytes.Buffer{}
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "png":
		err = png.Encode(buf, img)
	case "gif":
		err = gif.Encode(buf, img, nil)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func TestValidateImageFile_AcceptsSupportedFormats(t *testing.T) {
	cases := []struct {
		filename string
		format   string
		wantType string
	}{
		{"produk.jpg", "jpeg", "image/jpeg"},
		{"produk.jpeg", "jpeg", "image/jpeg"},
		{"produk.png", "png", "image/png"},
		{"produk.gif", "gif", "image/gif"},
	}

	for _, tc := range cases {
		header := multipartImageHeader(t, tc.filename, encodedImage(t, tc.format))
		contentType, err := validateImageFile(header)
		assert.NoError(t, err, tc.filename)
		assert.Equal(t, tc.wantType, contentType)
	}
}

func TestValidateImageFile_RejectsWrongExtension(t *testing.T) {
	header := multipartImageHeader(t, "produk.pdf", encodedImage(t, "png"))
	_, err := validateImageFile(header)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "jpg, jpeg, png and gif")
}

func TestValidateImageFile_RejectsDisguisedContent(t *testing.T) {
	// Correct extension, but the bytes are not an image
	header := multipartImageHeader(t, "produk.png", []byte("%PDF-1.4 not an image at all"))
	_, err := validateImageFile(header)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a supported image")
}

func TestValidateImageFile_RejectsOversizedImage(t *testing.T) {
	big := make([]byte, maxImageSize+1)
	copy(big, encodedImage(t, "jpeg"))
	header := multipartImageHeader(t, "produk.jpg", big)
	_, err := validateImageFile(header)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "1MB")
}
