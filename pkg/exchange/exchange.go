package exchange

import "math"

// Rate is the number of TWD one JPY buys.
type Rate float64

// Convert returns the TWD amount for yen, rounded to whole dollars.
func (r Rate) Convert(yen float64) float64 {
	return math.Round(yen * float64(r))
}

type Conversion struct {
	Yen  float64
	Twd  float64
	Rate Rate
}
