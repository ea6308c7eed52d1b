package imagestore

import (
	"bytes"
	"context"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

//go:generate mockgen -source=imagestore.go -destination=mock/imagestore_mock.go -package=mock

// Service membungkus pipeline foto check-in: kompresi, upload ke object
// storage, dan resolusi URL publik. Algoritma rekonsiliasi tidak memakai ini.
type Service interface {
	Compress(data []byte) ([]byte, error)
	Upload(ctx context.Context, data []byte, path string) error
	URLFor(path string) string
}

const jpegQuality = 80

// Compress men-decode foto (jpeg/png/webp) dan meng-encode ulang sebagai JPEG
// kualitas 80, meniru pipeline sharp di deployment lama.
func Compress(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		// imaging tidak mengenal webp; coba decoder webp sebelum menyerah
		var webpErr error
		img, webpErr = webp.Decode(bytes.NewReader(data))
		if webpErr != nil {
			return nil, err
		}
	}

	return encodeJPEG(img)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
