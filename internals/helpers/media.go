package helper

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Media assets (photos, signatures, QR images) live under MEDIA_ROOT
// and are served at /media/<relative path>.

var dataURIRe = regexp.MustCompile(`^data:image/[a-zA-Z+]+;base64,`)

// IsDataURI reports whether a payload looks like a base64 data-URI
// image (the shape kiosk capture widgets submit).
func IsDataURI(s string) bool {
	return dataURIRe.MatchString(s)
}

// SaveBase64Image decodes a data-URI payload, re-encodes it as webp
// (resized to fit 1024px on the long edge) and persists it under
// mediaRoot/folder. Returns the public URL path.
func SaveBase64Image(mediaRoot, folder, name, dataURI string) (string, error) {
	idx := strings.Index(dataURI, ",")
	if idx < 0 || !IsDataURI(dataURI) {
		return "", fmt.Errorf("payload is not a base64 image")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		return "", fmt.Errorf("base64 decode failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("image decode failed: %w", err)
	}
	img = imaging.Fit(img, 1024, 1024, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("webp encode failed: %w", err)
	}

	rel := filepath.Join(folder, UniqueFilename(name)+".webp")
	if err := writeMediaFile(mediaRoot, rel, buf.Bytes()); err != nil {
		return "", err
	}
	return "/media/" + filepath.ToSlash(rel), nil
}

// SavePNG persists raw PNG bytes (QR images) under mediaRoot/folder
// and returns the public URL path.
func SavePNG(mediaRoot, folder, name string, data []byte) (string, error) {
	rel := filepath.Join(folder, sanitizeFilename(name)+".png")
	if err := writeMediaFile(mediaRoot, rel, data); err != nil {
		return "", err
	}
	return "/media/" + filepath.ToSlash(rel), nil
}

func writeMediaFile(mediaRoot, rel string, data []byte) error {
	abs := filepath.Join(mediaRoot, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("media dir create failed: %w", err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("media write failed: %w", err)
	}
	return nil
}

func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

// UniqueFilename prefixes a date + uuid so repeated uploads never clash.
func UniqueFilename(original string) string {
	return fmt.Sprintf("%s-%s-%s",
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(original),
	)
}
