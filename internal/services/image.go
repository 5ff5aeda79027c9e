package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/ideaprism/mafia-growth-academy/internal/logging"
)

var (
	ErrUnsupportedImage = errors.New("unsupported image format")
	ErrImageTooLarge    = errors.New("image too large")
	ErrEmptyImage       = errors.New("empty image payload")
)

const (
	maxPhotoBytes     = 10 << 20 // decoded payload cap
	maxPhotoDimension = 1024
	photoJPEGQuality  = 80
)

type ImageServiceInterface interface {
	PreparePhoto(content string) (string, error)
}

// ImageService validates and compresses photo certification payloads.
type ImageService struct{}

func NewImageService() *ImageService {
	return &ImageService{}
}

// PreparePhoto validates a photo payload (data URL or bare base64;
// JPEG, PNG or WebP; at most 10MB decoded) and returns a compressed
// JPEG data URL. Compression failures fall back to the original
// payload: a bad resize never blocks a submission.
func (s *ImageService) PreparePhoto(content string) (string, error) {
	data, mime, err := decodePhotoPayload(content)
	if err != nil {
		return "", err
	}
	return s.compress(data, mime), nil
}

func decodePhotoPayload(content string) ([]byte, string, error) {
	payload := content
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, "", ErrUnsupportedImage
		}
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding image payload: %w", ErrUnsupportedImage)
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if len(data) > maxPhotoBytes {
		return nil, "", ErrImageTooLarge
	}

	mime := http.DetectContentType(data)
	switch mime {
	case "image/jpeg", "image/png", "image/webp":
		return data, mime, nil
	}
	return nil, "", ErrUnsupportedImage
}

func (s *ImageService) compress(data []byte, mime string) string {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		logging.Warn("Image decode failed; keeping original payload", map[string]interface{}{
			"mime":  mime,
			"error": err.Error(),
		})
		return dataURL(mime, data)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxPhotoDimension || height > maxPhotoDimension {
		if width >= height {
			height = height * maxPhotoDimension / width
			width = maxPhotoDimension
		} else {
			width = width * maxPhotoDimension / height
			height = maxPhotoDimension
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: photoJPEGQuality}); err != nil {
		logging.Warn("Image encode failed; keeping original payload", map[string]interface{}{
			"mime":  mime,
			"error": err.Error(),
		})
		return dataURL(mime, data)
	}
	return dataURL("image/jpeg", buf.Bytes())
}

func dataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
