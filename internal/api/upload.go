package api

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// PrepareImage decodes a product photo, downscales it to max width 800px
// and re-encodes it as JPEG, so uploads stay small regardless of what the
// operator picked. Only PNG, JPG and JPEG are accepted.
func PrepareImage(r io.Reader, filename string) ([]byte, string, error) {
	var img image.Image
	var err error
	switch filepath.Ext(filename) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpeg", ".jpg":
		img, err = jpeg.Decode(r)
	default:
		return nil, "", fmt.Errorf("unsupported image format %q, only PNG, JPG, JPEG are allowed", filepath.Ext(filename))
	}
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}
	return out.Bytes(), uuid.New().String() + ".jpg", nil
}

// UploadImage sends a prepared image to the backend and returns the hosted
// URL for use in a product record.
func (c *Client) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("api: upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("api: upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("api: upload form: %w", err)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodPost, "/upload-image", form.FormDataContentType(), &body, &payload); err != nil {
		return "", err
	}
	return payload.URL, nil
}
