package mongo

import (
	"time"

	"cloud.google.com/go/civil"
)

// DateToTime maps a calendar date to the BSON date stored for it: midnight UTC.
func DateToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func TimeToDate(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}
