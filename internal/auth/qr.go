package auth

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRSize is the edge length in pixels of share QR codes.
const DefaultQRSize = 256

// QRCode renders content as a PNG QR code. size <= 0 means DefaultQRSize.
func QRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
