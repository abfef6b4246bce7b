package strength

import (
	"fmt"
	"math"
)

// CrackBucket groups crack times for display.
type CrackBucket int

const (
	UnderAMinute CrackBucket = iota
	Minutes
	Hours
	Days
	Years
	Decades
	Centuries
	Uncrackable
)

// Bucket bounds in seconds. The names follow the dashboard: "years" runs up to a century,
// "decades" up to a millennium and "centuries" up to ten millennia.
const (
	minute       = 60.0
	hour         = 3600.0
	day          = 86400.0
	year         = 31536000.0
	century      = 3153600000.0
	millennium   = 31536000000.0
	tenMillennia = 315360000000.0
)

var bucketNames = [...]string{
	"under-a-minute", "minutes", "hours", "days", "years", "decades", "centuries", "uncrackable",
}

func (b CrackBucket) String() string {
	if b < UnderAMinute || b > Uncrackable {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

func (b CrackBucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// BucketOf maps seconds to a bucket. Every upper bound is exclusive: exactly 60 seconds
// is already Minutes.
func BucketOf(seconds float64) CrackBucket {
	switch {
	case seconds < minute:
		return UnderAMinute
	case seconds < hour:
		return Minutes
	case seconds < day:
		return Hours
	case seconds < year:
		return Days
	case seconds < century:
		return Years
	case seconds < millennium:
		return Decades
	case seconds < tenMillennia:
		return Centuries
	default:
		return Uncrackable
	}
}

// FormatCrackTime renders seconds the way the dashboard shows them.
func FormatCrackTime(seconds float64) string {
	switch BucketOf(seconds) {
	case UnderAMinute:
		return "Less than a minute"
	case Minutes:
		return fmt.Sprintf("%.0f minutes", math.Round(seconds/minute))
	case Hours:
		return fmt.Sprintf("%.0f hours", math.Round(seconds/hour))
	case Days:
		return fmt.Sprintf("%.0f days", math.Round(seconds/day))
	case Years:
		return fmt.Sprintf("%.0f years", math.Round(seconds/year))
	case Decades:
		return fmt.Sprintf("%.0f decades", math.Round(seconds/century))
	case Centuries:
		return fmt.Sprintf("%.0f centuries", math.Round(seconds/millennium))
	default:
		return "Effectively uncrackable"
	}
}
