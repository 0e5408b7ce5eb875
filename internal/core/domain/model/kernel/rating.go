package kernel

import "jetbond/internal/pkg/errs"

// Rating is the three-bucket feedback value exchanged between employers and
// workers after a job. It is stored both as a stamp on the job (once per
// direction) and as counters on the rated principal's record.
type Rating string

const (
	RatingGood    Rating = "good"
	RatingNeutral Rating = "neutral"
	RatingBad     Rating = "bad"
)

// Validate checks that the rating is one of the three defined buckets.
func (r Rating) Validate() error {
	switch r {
	case RatingGood, RatingNeutral, RatingBad:
		return nil
	default:
		return errs.NewValueIsInvalidError("rating")
	}
}

// String returns the bucket name.
func (r Rating) String() string {
	return string(r)
}
