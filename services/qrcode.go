package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders a reservation confirmation link as a PNG so guests
// can pull up their booking at the door.
type QRGenerator struct {
	BaseURL string
}

func (g QRGenerator) Generate(reservationID uint) ([]byte, error) {
	data := fmt.Sprintf("%s/reservations/%d", g.BaseURL, reservationID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
