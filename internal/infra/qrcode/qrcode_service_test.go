package qrcode

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutik/config"
)

func TestQRCodeService_ShopURL(t *testing.T) {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{
		BaseURL: "https://boutik.example.com/shops/",
	}}
	svc := NewQRCodeService(cfg)

	shopID := uuid.New()
	assert.Equal(t, "https://boutik.example.com/shops/"+shopID.String(), svc.ShopURL(shopID))
}

func TestQRCodeService_GeneratesPNG(t *testing.T) {
	svc := NewQRCodeService(&config.Config{})

	png, err := svc.GenerateShopQRCode(uuid.New())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
