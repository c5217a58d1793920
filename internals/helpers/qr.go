package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRTokenPrefix is the human-readable prefix stamped on every visitor
// QR token.
const QRTokenPrefix = "KREP-"

// GenerateQRToken builds an opaque visitor token: fixed prefix plus
// eight random hex characters, uppercased. Assigned once per visitor
// row and immutable thereafter.
func GenerateQRToken() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return QRTokenPrefix + strings.ToUpper(hex.EncodeToString(buf))
}

// RenderQRPNG encodes the token as a PNG at low error-correction level
// (matching the scannable badge artwork) and returns the raw bytes.
func RenderQRPNG(token string) ([]byte, error) {
	png, err := qrcode.Encode(token, qrcode.Low, 256)
	if err != nil {
		return nil, fmt.Errorf("qr encode failed: %w", err)
	}
	return png, nil
}
