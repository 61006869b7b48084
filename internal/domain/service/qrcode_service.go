package service

import "github.com/google/uuid"

// QRCodeService generates QR codes pointing at shop storefront pages.
type QRCodeService interface {
	// GenerateShopQRCode renders a PNG QR code for the shop's public URL.
	GenerateShopQRCode(shopID uuid.UUID) ([]byte, error)

	// ShopURL returns the public storefront URL encoded into the QR code.
	ShopURL(shopID uuid.UUID) string
}
