package voucher

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

const qrSize = 256

var ErrNothingToEncode = errors.New("voucher has neither link nor confirmation number")

// qrPayload prefers the booking link, which scanners can open directly.
func qrPayload(v Voucher) (string, error) {
	if v.URL != "" {
		return v.URL, nil
	}
	if v.ConfirmationNumber != "" {
		return v.ConfirmationNumber, nil
	}
	return "", ErrNothingToEncode
}

func encodeQR(payload string) ([]byte, error) {
	return qrcode.Encode(payload, qrcode.Medium, qrSize)
}
