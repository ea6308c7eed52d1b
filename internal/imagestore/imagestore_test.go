package imagestore

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompress_ReencodesAsJPEG(t *testing.T) {
	out, err := Compress(makePNG(t))
	assert.NoError(t, err)
	assert.NotEmpty(t, out)
	// JPEG SOI marker
	assert.Equal(t, []byte{0xFF, 0xD8}, out[:2])
}

func TestCompress_RejectsGarbage(t *testing.T) {
	_, err := Compress([]byte("not an image"))
	assert.Error(t, err)
}

func TestB2Store_URLFor(t *testing.T) {
	s := NewB2Store(B2Config{
		BucketName:  "attendance-photos",
		CDNEndpoint: "https://cdn.example.com/",
	})
	assert.Equal(t,
		"https://cdn.example.com/file/attendance-photos/attendance/123_abc.jpeg",
		s.URLFor("attendance/123_abc.jpeg"),
	)
}
