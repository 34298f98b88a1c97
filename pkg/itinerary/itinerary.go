package itinerary

type ActivityType string

const (
	TypeTransport ActivityType = "transport"
	TypeHotel     ActivityType = "hotel"
	TypeFood      ActivityType = "food"
	TypeActivity  ActivityType = "activity"
)

type Coordinates struct {
	Lat float64
	Lon float64
}

type Day struct {
	// Number is the 1-based position of the day in the trip.
	Number      int
	Date        string
	Location    string
	Coordinates Coordinates
	Hotel       string
	Activities  []Activity
}

type Activity struct {
	Time        string
	Title       string
	Type        ActivityType
	Description string
	Menu        []string
	Notes       string
	MapURL      string
	// VoucherKey is set on transport and hotel activities that hold a booking.
	VoucherKey string
}

// HasVoucher reports whether the activity takes a booking voucher.
func (a Activity) HasVoucher() bool {
	return a.VoucherKey != ""
}

type NavEntry struct {
	Label string
	Path  string
}

func (d Day) clone() Day {
	activities := make([]Activity, len(d.Activities))
	for i, a := range d.Activities {
		if a.Menu != nil {
			a.Menu = append([]string(nil), a.Menu...)
		}
		activities[i] = a
	}
	d.Activities = activities
	return d
}
