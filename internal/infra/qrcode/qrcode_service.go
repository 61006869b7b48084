// Package qrcode renders QR codes that link to shop storefront pages.
package qrcode

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"boutik/config"
	"boutik/internal/domain/service"
)

const (
	defaultSize    = 256
	defaultBaseURL = "http://localhost:8080/shops"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance from configuration.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	baseURL := defaultBaseURL
	levelName := ""

	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		if cfg.QRCode.BaseURL != "" {
			baseURL = strings.TrimRight(cfg.QRCode.BaseURL, "/")
		}
		levelName = cfg.QRCode.ErrorCorrectionLevel
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: parseRecoveryLevel(levelName),
		baseURL:              baseURL,
	}
}

func parseRecoveryLevel(name string) qrcode.RecoveryLevel {
	switch name {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// ShopURL returns the public storefront URL encoded into the QR code.
func (s *qrcodeService) ShopURL(shopID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", s.baseURL, shopID)
}

// GenerateShopQRCode renders a PNG QR code for the shop's public URL.
func (s *qrcodeService) GenerateShopQRCode(shopID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.ShopURL(shopID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
