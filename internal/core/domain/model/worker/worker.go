package worker

import (
	"errors"
	"fmt"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/errs"
	"jetbond/internal/pkg/guard"
)

// Type distinguishes the two kinds of registered users. Both live in the same
// aggregate: employers carry rating counters too, they just never apply.
type Type string

const (
	// TypeWorker is a user who applies to jobs.
	TypeWorker Type = "worker"

	// TypeEmployer is a user who posts jobs.
	TypeEmployer Type = "employer"
)

// Validate checks that the Type value is one of the defined user kinds.
func (t Type) Validate() error {
	if t != TypeWorker && t != TypeEmployer {
		return errs.NewValueIsInvalidError("userType")
	}
	return nil
}

// String returns the persisted name of the type.
func (t Type) String() string { return string(t) }

// Domain errors for worker operations.
var (
	// ErrWorkerIsNotConstructed is returned when using a Worker that did not
	// come from NewWorker or RestoreWorker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker or RestoreWorker constructor")
	// ErrNameIsRequired is returned when registering a user without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrNotAWorker is returned when an employer account attempts a
	// worker-only operation.
	ErrNotAWorker = errors.New("user is not a worker")
)

// RatingCounts accumulates the ratings a user has received, by bucket.
type RatingCounts struct {
	Good    int
	Neutral int
	Bad     int
}

// Total returns the number of ratings received.
func (c RatingCounts) Total() int {
	return c.Good + c.Neutral + c.Bad
}

// Worker is the aggregate root for a registered user. For worker accounts it
// also owns the availability synchronization state: busy if and only if
// currentJobID is set, and a busy worker never appears in matching.
type Worker struct {
	id       kernel.UUID
	name     string
	userType Type
	district string
	minRate  int
	maxRate  int
	skills   []string
	locale   string

	availability Availability
	currentJobID *kernel.UUID

	ratings RatingCounts

	guard guard.ConstructorGuard
}

// NewWorker registers a user. Workers start open to work with no current job.
// minRate and maxRate bound the hourly rate the worker is willing to take;
// zero means unbounded on that side.
func NewWorker(
	id kernel.UUID,
	name string,
	userType Type,
	district string,
	minRate int,
	maxRate int,
	skills []string,
	locale string,
) (*Worker, error) {
	w := &Worker{
		availability: AvailabilityOpenToWork,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setUserType(userType),
		w.setRates(minRate, maxRate),
	); err != nil {
		return nil, err
	}

	w.district = district
	w.skills = append([]string(nil), skills...)
	w.locale = locale

	return w, nil
}

// RestoreWorker rebuilds a user aggregate from persisted state.
func RestoreWorker(
	id kernel.UUID,
	name string,
	userType Type,
	district string,
	minRate int,
	maxRate int,
	skills []string,
	locale string,
	availability Availability,
	currentJobID *kernel.UUID,
	ratings RatingCounts,
) (*Worker, error) {
	if err := availability.Validate(); err != nil {
		return nil, err
	}
	if availability == AvailabilityBusy && currentJobID == nil {
		return nil, errs.NewValueIsRequiredError("currentJobId")
	}
	if availability == AvailabilityOpenToWork && currentJobID != nil {
		return nil, errs.NewValueIsInvalidError("currentJobId")
	}

	w := &Worker{
		availability: availability,
		currentJobID: currentJobID,
		ratings:      ratings,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setUserType(userType),
		w.setRates(minRate, maxRate),
	); err != nil {
		return nil, err
	}

	w.district = district
	w.skills = append([]string(nil), skills...)
	w.locale = locale

	return w, nil
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setUserType(userType Type) error {
	if err := userType.Validate(); err != nil {
		return err
	}
	w.userType = userType
	return nil
}

func (w *Worker) setRates(minRate, maxRate int) error {
	if minRate < 0 {
		return errs.NewValueIsInvalidError("minRate")
	}
	if maxRate < 0 || (maxRate > 0 && maxRate < minRate) {
		return errs.NewValueIsInvalidError("maxRate")
	}
	w.minRate = minRate
	w.maxRate = maxRate
	return nil
}

// Validate ensures the Worker instance was constructed through NewWorker or
// RestoreWorker.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// ID returns the user's unique identifier.
func (w *Worker) ID() kernel.UUID { return w.id }

// Name returns the user's display name.
func (w *Worker) Name() string { return w.name }

// UserType returns whether the user is a worker or an employer.
func (w *Worker) UserType() Type { return w.userType }

// IsWorker reports whether the user may apply to jobs.
func (w *Worker) IsWorker() bool { return w.userType == TypeWorker }

// District returns the user's home district.
func (w *Worker) District() string { return w.district }

// MinRate returns the lowest hourly rate the worker accepts (0 = unbounded).
func (w *Worker) MinRate() int { return w.minRate }

// MaxRate returns the highest hourly rate the worker expects (0 = unbounded).
func (w *Worker) MaxRate() int { return w.maxRate }

// Skills returns a copy of the worker's skill list.
func (w *Worker) Skills() []string {
	return append([]string(nil), w.skills...)
}

// Locale returns the user's preferred language hint.
func (w *Worker) Locale() string { return w.locale }

// Availability returns the worker's synchronization state.
func (w *Worker) Availability() Availability { return w.availability }

// IsOpenToWork reports whether the worker may apply and appear in matching.
func (w *Worker) IsOpenToWork() bool { return w.availability == AvailabilityOpenToWork }

// IsBusy reports whether the worker is tied to a job.
func (w *Worker) IsBusy() bool { return w.availability == AvailabilityBusy }

// CurrentJobID returns the job the worker is tied to, or nil.
func (w *Worker) CurrentJobID() *kernel.UUID { return w.currentJobID }

// Ratings returns the user's accumulated rating counters.
func (w *Worker) Ratings() RatingCounts { return w.ratings }

// Apply ties the worker to a job: availability flips to busy and currentJobID
// is set in the same step, so the two can never disagree.
func (w *Worker) Apply(jobID kernel.UUID) error {
	if !w.IsWorker() {
		return ErrNotAWorker
	}
	if err := jobID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("jobId", err)
	}
	if !CanTransition(w.availability, AvailabilityBusy, TriggerApplyToJob) {
		return newInvalidTransitionError(w.availability, AvailabilityBusy)
	}

	w.availability = AvailabilityBusy
	w.currentJobID = &jobID
	return nil
}

// Release frees a busy worker, clearing the current job link. The trigger
// must be one of the release causes; applying is never a release.
func (w *Worker) Release(trigger Trigger) error {
	if w.availability != AvailabilityBusy {
		return newInvalidTransitionError(w.availability, AvailabilityOpenToWork)
	}
	if !CanTransition(AvailabilityBusy, AvailabilityOpenToWork, trigger) {
		return newInvalidTriggerError(AvailabilityBusy, AvailabilityOpenToWork, trigger)
	}

	w.availability = AvailabilityOpenToWork
	w.currentJobID = nil
	return nil
}

// IsTiedTo reports whether the worker's current job is the given one.
func (w *Worker) IsTiedTo(jobID kernel.UUID) bool {
	return w.currentJobID != nil && w.currentJobID.IsEqual(jobID)
}

// AddRating bumps the counter for the given bucket.
func (w *Worker) AddRating(rating kernel.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	switch rating {
	case kernel.RatingGood:
		w.ratings.Good++
	case kernel.RatingNeutral:
		w.ratings.Neutral++
	case kernel.RatingBad:
		w.ratings.Bad++
	default:
		return fmt.Errorf("unreachable rating bucket %q", rating)
	}
	return nil
}

// GoodRatingRatio returns the share of good ratings, 0 when unrated.
func (w *Worker) GoodRatingRatio() float64 {
	total := w.ratings.Total()
	if total == 0 {
		return 0
	}
	return float64(w.ratings.Good) / float64(total)
}

// BadRatingRatio returns the share of bad ratings, 0 when unrated.
func (w *Worker) BadRatingRatio() float64 {
	total := w.ratings.Total()
	if total == 0 {
		return 0
	}
	return float64(w.ratings.Bad) / float64(total)
}
