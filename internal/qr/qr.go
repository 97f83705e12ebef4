// Package qr builds planner destination URLs and wraps the QR image
// collaborators. URL building is pure; image encode/decode sit behind small
// seams so an absent decode capability degrades instead of crashing.
package qr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

// UTM parameters stamped onto every planner destination URL.
const (
	utmSource   = "planner"
	utmMedium   = "qr"
	utmCampaign = "planner_qr"
)

// ErrDecodeUnavailable signals that the optional QR decode capability is
// absent. It is a degraded state, not a failure: manual payload input
// remains available.
var ErrDecodeUnavailable = errors.New("qr decode capability unavailable")

// FinalURL builds the destination URL the QR image encodes. The optional
// payload is attached as the canonical JSON under "payload" when it parses
// as JSON, otherwise URL-encoded free text under "utm_content". Each
// parameter, including the three UTM ones, is set only if not already
// present, so applying FinalURL to its own output changes nothing.
// Parameters are reassembled in sorted order for byte-stable output.
func FinalURL(dest string, payload string) (string, error) {
	u, err := url.Parse(dest)
	if err != nil {
		return "", fmt.Errorf("parsing destination url: %w", err)
	}

	q := u.Query()

	if payload != "" {
		var v any
		if json.Unmarshal([]byte(payload), &v) == nil {
			if !q.Has("payload") {
				canonical, err := json.Marshal(v)
				if err != nil {
					return "", fmt.Errorf("canonicalizing payload: %w", err)
				}
				q.Set("payload", string(canonical))
			}
		} else if !q.Has("utm_content") {
			q.Set("utm_content", payload)
		}
	}

	if !q.Has("utm_source") {
		q.Set("utm_source", utmSource)
	}
	if !q.Has("utm_medium") {
		q.Set("utm_medium", utmMedium)
	}
	if !q.Has("utm_campaign") {
		q.Set("utm_campaign", utmCampaign)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// EncodePNG renders text as a PNG QR image of the given pixel size.
func EncodePNG(text string, size int) ([]byte, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr image: %w", err)
	}
	return png, nil
}

// Decoder is the optional QR decode collaborator.
type Decoder interface {
	// Decode extracts the text content of a QR image, or returns
	// ErrDecodeUnavailable when the capability is absent.
	Decode(imageBytes []byte) (string, error)
}

// ZXingDecoder decodes QR images with the gozxing reader.
type ZXingDecoder struct{}

func (ZXingDecoder) Decode(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("reading qr image: %w", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("preparing qr bitmap: %w", err)
	}
	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("decoding qr image: %w", err)
	}
	return result.GetText(), nil
}

// UnavailableDecoder is the Decoder used when decode is switched off.
type UnavailableDecoder struct{}

func (UnavailableDecoder) Decode([]byte) (string, error) {
	return "", ErrDecodeUnavailable
}
