package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/cmlabs-hris/office-attendance-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(1))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newService(t *testing.T) (FileService, string) {
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "http://files.test/uploads")
	require.NoError(t, err)
	return NewFileService(local, "http://files.test/uploads"), dir
}

func TestUploadReceiptPDF(t *testing.T) {
	svc, _ := newService(t)
	url, err := svc.UploadReceipt(context.Background(), "u1", strings.NewReader("%PDF-1.4"), "march.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://files.test/uploads/receipts/u1/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	require.NoError(t, svc.DeleteByURL(context.Background(), url))
}

func TestUploadReceiptRejectsOtherTypes(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.UploadReceipt(context.Background(), "u1", strings.NewReader("MZ"), "tool.exe")
	assert.Error(t, err)
}

func TestCompressImageShrinksLargeImages(t *testing.T) {
	raw := noisyPNG(t, 600, 600)
	require.Greater(t, len(raw), receiptMaxBytes)

	out, err := compressImage(raw, receiptMaxBytes, receiptMinBytes)
	require.NoError(t, err)
	assert.Less(t, len(out), len(raw))

	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestCompressImageKeepsSmallImages(t *testing.T) {
	raw := noisyPNG(t, 20, 20)
	out, err := compressImage(raw, receiptMaxBytes, receiptMinBytes)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}
