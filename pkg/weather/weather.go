package weather

type Label string

const (
	LabelClear    Label = "clear"
	LabelCloudy   Label = "cloudy"
	LabelRain     Label = "rain"
	LabelSnow     Label = "snow"
	LabelOvercast Label = "overcast"
)

type Coordinates struct {
	Lat float64
	Lon float64
}

type Report struct {
	// Temperature in degrees Celsius.
	Temperature float64
	Label       Label
	// Code is the WMO weather interpretation code, -1 for fallback reports.
	Code int
}

var (
	clearCodes  = codeSet(0, 1)
	cloudyCodes = codeSet(2)
	rainCodes   = codeSet(51, 53, 55, 56, 57, 61, 63, 65, 66, 67, 80, 81, 82, 95, 96, 99)
	snowCodes   = codeSet(71, 73, 75, 77, 85, 86)
)

func codeSet(codes ...int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// LabelForCode maps a WMO code to a label. Fog (45, 48), code 3 and any
// unknown code read as overcast.
func LabelForCode(code int) Label {
	if _, ok := clearCodes[code]; ok {
		return LabelClear
	}
	if _, ok := cloudyCodes[code]; ok {
		return LabelCloudy
	}
	if _, ok := rainCodes[code]; ok {
		return LabelRain
	}
	if _, ok := snowCodes[code]; ok {
		return LabelSnow
	}
	return LabelOvercast
}
