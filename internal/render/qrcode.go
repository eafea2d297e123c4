package render

import (
	"errors"
	"image"

	"github.com/skip2/go-qrcode"
)

const defaultQRCodeSizePx = 64

// GenerateQRCodeImage renders payload as a black on white QR code of
// sizePx square. Codes that need more modules than sizePx holds come out
// larger.
func GenerateQRCodeImage(payload string, sizePx int) (image.Image, error) {
	if payload == "" {
		return nil, errors.New("qrcode: empty payload")
	}
	if sizePx <= 0 {
		sizePx = defaultQRCodeSizePx
	}

	code, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, err
	}
	// Small panels can't spare the four module quiet zone.
	code.DisableBorder = sizePx < 128
	return code.Image(sizePx), nil
}
