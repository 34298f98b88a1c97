package voucher

import "time"

// Mode of a stored voucher. A key without a stored voucher has none.
type Mode string

const (
	ModeView Mode = "view"
	ModeEdit Mode = "edit"
)

// Fields are the user-entered parts of a voucher, written verbatim on save.
type Fields struct {
	ConfirmationNumber string
	URL                string
	Note               string
	// ImageRef points to an uploaded image, empty when there is none.
	ImageRef string
}

type Voucher struct {
	Key string
	Fields
	Mode      Mode
	UpdatedAt time.Time
}

// initialMode opens a voucher for editing until it carries a confirmation number or a link.
func initialMode(f Fields) Mode {
	if f.ConfirmationNumber == "" && f.URL == "" {
		return ModeEdit
	}
	return ModeView
}
