package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"path/filepath"
	"strings"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxDimension = 512
	jpegQuality         = 85
)

// ErrUnsupportedImage marks uploads that cannot be decoded as an image.
var ErrUnsupportedImage = errors.New("media: unsupported image format")

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// ImageProcessor decodes an uploaded image and scales it down so neither side
// exceeds the maximum dimension. PNG stays PNG; everything else, including
// GIF and WebP, is re-encoded as JPEG.
type ImageProcessor struct {
	maxDimension int
}

func NewImageProcessor(maxDimension int) *ImageProcessor {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &ImageProcessor{maxDimension: maxDimension}
}

func (p *ImageProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("media: invalid dimensions %dx%d", width, height)
	}

	contentType := outputContentType(format, upload.ContentType, upload.FileName)

	if width <= targetMax && height <= targetMax {
		// Small enough already, but foreign formats still get re-encoded.
		if matchesFormat(format, contentType) {
			return &Result{Bytes: data, ContentType: contentType, Resized: false}, nil
		}
		encoded, err := encode(src, contentType)
		if err != nil {
			return nil, err
		}
		return &Result{Bytes: encoded, ContentType: contentType, Resized: false}, nil
	}

	targetW, targetH := scaleToFit(width, height, targetMax)
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	encoded, err := encode(dst, contentType)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: encoded, ContentType: contentType, Resized: true}, nil
}

func encode(img image.Image, contentType string) ([]byte, error) {
	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("media: encode png: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("media: encode jpeg: %w", err)
		}
	}
	return buf.Bytes(), nil
}

func matchesFormat(format, contentType string) bool {
	switch contentType {
	case "image/png":
		return format == "png"
	case "image/jpeg":
		return format == "jpeg"
	}
	return false
}

func scaleToFit(width, height, maxDim int) (int, int) {
	if width >= height {
		newW := maxDim
		newH := height * maxDim / width
		return ensureMin(newW), ensureMin(newH)
	}
	newH := maxDim
	newW := width * maxDim / height
	return ensureMin(newW), ensureMin(newH)
}

func ensureMin(value int) int {
	if value < 1 {
		return 1
	}
	return value
}

// outputContentType picks the stored format. Only PNG survives as-is; other
// inputs become JPEG because x/image has no WebP or GIF encoder.
func outputContentType(format, declared, fileName string) string {
	if format == "png" {
		return "image/png"
	}
	if format == "jpeg" {
		return "image/jpeg"
	}
	ct := strings.ToLower(strings.TrimSpace(declared))
	if ct == "image/png" {
		return "image/png"
	}
	if ct == "" {
		ext := strings.ToLower(filepath.Ext(fileName))
		if ext == ".png" {
			return "image/png"
		}
		if ext != "" {
			if mt := mime.TypeByExtension(ext); mt == "image/png" {
				return "image/png"
			}
		}
	}
	return "image/jpeg"
}
