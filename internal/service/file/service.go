package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const (
	receiptMaxBytes = 300 * 1024
	receiptMinBytes = 50 * 1024
)

type FileService interface {
	// UploadReceipt stores an expense receipt and returns its public URL.
	// JPEG and PNG receipts are recompressed to JPEG.
	UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// DeleteByURL removes a file previously returned by an upload.
	DeleteByURL(ctx context.Context, url string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	baseURL string
}

func NewFileService(storage storage.FileStorage, baseURL string) FileService {
	return &fileServiceImpl{
		storage: storage,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// UploadReceipt implements FileService.
func (s *fileServiceImpl) UploadReceipt(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := "application/pdf"
	body := file

	switch ext {
	case ".jpg", ".jpeg", ".png":
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read receipt: %w", err)
		}
		compressed, err := compressImage(buffer, receiptMaxBytes, receiptMinBytes)
		if err != nil {
			return "", fmt.Errorf("failed to compress receipt: %w", err)
		}
		if !bytes.Equal(compressed, buffer) {
			ext = ".jpg"
		}
		if ext == ".png" {
			contentType = "image/png"
		} else {
			contentType = "image/jpeg"
		}
		body = bytes.NewReader(compressed)
	case ".pdf":
	default:
		return "", fmt.Errorf("invalid file type %q: only jpg, jpeg, png, pdf allowed", ext)
	}

	path := filepath.Join("receipts", userID, uuid.New().String()+ext)
	uploadedPath, err := s.storage.Upload(ctx, body, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}

	url, err := s.storage.GetURL(ctx, uploadedPath, 0)
	if err != nil {
		return "", fmt.Errorf("failed to build receipt url: %w", err)
	}
	return url, nil
}

// DeleteByURL implements FileService. URLs outside the storage base are ignored.
func (s *fileServiceImpl) DeleteByURL(ctx context.Context, url string) error {
	path, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

// compressImage re-encodes an image as JPEG until it fits maxSize, first by
// lowering quality and then by downscaling. Images already within
// [minSize, maxSize] or smaller than minSize are returned unchanged.
func compressImage(buffer []byte, maxSize int, minSize int) ([]byte, error) {
	if len(buffer) <= maxSize {
		return buffer, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	quality := 85
	var compressed []byte

	for quality >= 50 {
		buf := new(bytes.Buffer)
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		compressed = buf.Bytes()

		if len(compressed) <= maxSize {
			return compressed, nil
		}
		quality -= 5
	}

	// Still too large: scale towards the middle of the range.
	target := (maxSize + minSize) / 2
	ratio := math.Sqrt(float64(target) / float64(len(compressed)))
	width := max(int(float64(bounds.Dx())*ratio), 1)
	height := max(int(float64(bounds.Dy())*ratio), 1)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resizeImage(img, width, height), &jpeg.Options{Quality: 70}); err != nil {
		return nil, fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), nil
}

// resizeImage scales src to width x height with CatmullRom interpolation.
func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
