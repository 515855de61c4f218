package chart

import "time"

var easternLoc *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*3600)
	}
	easternLoc = loc
}

// easternTime converts to the exchange timezone so intraday axis labels
// line up with trading hours.
func easternTime(t time.Time) time.Time {
	return t.In(easternLoc)
}
