package job

import (
	"errors"
	"time"

	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/pkg/errs"
	"jetbond/internal/pkg/guard"
)

const (
	// DefaultExpirationMinutes is applied when a job is created without an
	// explicit expiration offset.
	DefaultExpirationMinutes = 5

	// MaxExpirationMinutes caps how far into the future a posting may live.
	MaxExpirationMinutes = 180
)

// Domain errors for job operations.
var (
	// ErrJobIsNotConstructed is returned when using a Job that did not come
	// from NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
	// ErrTitleIsRequired is returned when creating a job without a title.
	ErrTitleIsRequired = errs.NewValueIsRequiredError("title")
	// ErrDescriptionIsRequired is returned when creating a job without a description.
	ErrDescriptionIsRequired = errs.NewValueIsRequiredError("description")
	// ErrDistrictIsRequired is returned when creating a job without a district.
	ErrDistrictIsRequired = errs.NewValueIsRequiredError("district")
	// ErrHourlyRateIsInvalid is returned when the hourly rate is not positive.
	ErrHourlyRateIsInvalid = errs.NewValueIsInvalidError("hourlyRate")
	// ErrPermissionDenied is returned when the acting principal is not allowed
	// to drive the attempted transition.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyRated is returned when a rating direction on a job is stamped twice.
	ErrAlreadyRated = errors.New("job already rated in this direction")
)

// Job is the aggregate root for a short-term work posting. It owns the
// lifecycle status, the embedded response window, the selected worker link,
// and the per-direction rating stamps.
//
// Invariants maintained by the aggregate:
//   - status only moves along edges of the transition table, with the actor's
//     role and identity validated before any mutation
//   - selectedWorkerID is set if and only if status is assigned, pending, or completed
//   - the window is open only while status is matching; once closed it never reopens
//   - at most MaxResponses applications, unique per worker, arrival-ordered
//   - a worker recorded in cancelledApplications can never re-apply
type Job struct {
	id          kernel.UUID
	employerID  kernel.UUID
	title       string
	description string
	district    string
	hourlyRate  int
	duration    string

	status    Status
	createdAt time.Time
	expiresAt time.Time
	expiredAt *time.Time

	selectedWorkerID *kernel.UUID
	selectedAt       *time.Time
	completedAt      *time.Time
	cancelledAt      *time.Time

	// employerRating is the employer's rating of the worker; workerRating is
	// the worker's rating of the employer. Each is stamped at most once.
	employerRating *kernel.Rating
	workerRating   *kernel.Rating

	window                ResponseWindow
	cancelledApplications map[kernel.UUID]struct{}

	guard guard.ConstructorGuard
}

// NewJob creates a posting in matching status with a closed window.
// The expiration offset defaults to DefaultExpirationMinutes when not positive
// and is clamped to MaxExpirationMinutes.
func NewJob(
	id kernel.UUID,
	employerID kernel.UUID,
	title string,
	description string,
	district string,
	hourlyRate int,
	duration string,
	expirationMinutes int,
	now time.Time,
) (*Job, error) {
	j := &Job{
		status:                StatusMatching,
		createdAt:             now,
		cancelledApplications: make(map[kernel.UUID]struct{}),
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setEmployerID(employerID),
		j.setTitle(title),
		j.setDescription(description),
		j.setDistrict(district),
		j.setHourlyRate(hourlyRate),
	); err != nil {
		return nil, err
	}

	j.duration = duration

	minutes := expirationMinutes
	if minutes <= 0 {
		minutes = DefaultExpirationMinutes
	}
	if minutes > MaxExpirationMinutes {
		minutes = MaxExpirationMinutes
	}
	j.expiresAt = now.Add(time.Duration(minutes) * time.Minute)

	return j, nil
}

// RestoreJob rebuilds a job aggregate from persisted state, preserving the
// lifecycle position it had when it was mirrored.
func RestoreJob(
	id kernel.UUID,
	employerID kernel.UUID,
	title string,
	description string,
	district string,
	hourlyRate int,
	duration string,
	status Status,
	createdAt time.Time,
	expiresAt time.Time,
	expiredAt *time.Time,
	selectedWorkerID *kernel.UUID,
	selectedAt *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
	employerRating *kernel.Rating,
	workerRating *kernel.Rating,
	window ResponseWindow,
	cancelledApplications []kernel.UUID,
) (*Job, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	j := &Job{
		status:                status,
		createdAt:             createdAt,
		expiresAt:             expiresAt,
		expiredAt:             expiredAt,
		selectedWorkerID:      selectedWorkerID,
		selectedAt:            selectedAt,
		completedAt:           completedAt,
		cancelledAt:           cancelledAt,
		employerRating:        employerRating,
		workerRating:          workerRating,
		window:                window,
		cancelledApplications: make(map[kernel.UUID]struct{}, len(cancelledApplications)),
		guard:                 guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		j.setID(id),
		j.setEmployerID(employerID),
		j.setTitle(title),
		j.setDescription(description),
		j.setDistrict(district),
		j.setHourlyRate(hourlyRate),
	); err != nil {
		return nil, err
	}

	j.duration = duration
	for _, workerID := range cancelledApplications {
		j.cancelledApplications[workerID] = struct{}{}
	}

	return j, nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	j.id = id
	return nil
}

func (j *Job) setEmployerID(employerID kernel.UUID) error {
	if err := employerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("employerId", err)
	}
	j.employerID = employerID
	return nil
}

func (j *Job) setTitle(title string) error {
	if title == "" {
		return ErrTitleIsRequired
	}
	j.title = title
	return nil
}

func (j *Job) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}
	j.description = description
	return nil
}

func (j *Job) setDistrict(district string) error {
	if district == "" {
		return ErrDistrictIsRequired
	}
	j.district = district
	return nil
}

func (j *Job) setHourlyRate(hourlyRate int) error {
	if hourlyRate <= 0 {
		return ErrHourlyRateIsInvalid
	}
	j.hourlyRate = hourlyRate
	return nil
}

// Validate ensures the Job instance was constructed through NewJob or RestoreJob.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNotConstructed
	}
	return j.guard.Validate(ErrJobIsNotConstructed)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// EmployerID returns the identifier of the employer who owns the posting.
func (j *Job) EmployerID() kernel.UUID { return j.employerID }

// Title returns the posting title.
func (j *Job) Title() string { return j.title }

// Description returns the posting description.
func (j *Job) Description() string { return j.description }

// District returns the posting's location district.
func (j *Job) District() string { return j.district }

// HourlyRate returns the offered hourly rate.
func (j *Job) HourlyRate() int { return j.hourlyRate }

// Duration returns the free-form duration text of the posting.
func (j *Job) Duration() string { return j.duration }

// Status returns the current lifecycle status.
func (j *Job) Status() Status { return j.status }

// CreatedAt returns the posting creation time.
func (j *Job) CreatedAt() time.Time { return j.createdAt }

// ExpiresAt returns the deadline after which the sweeper may expire the posting.
func (j *Job) ExpiresAt() time.Time { return j.expiresAt }

// ExpiredAt returns when the sweeper expired the posting, or nil.
func (j *Job) ExpiredAt() *time.Time { return j.expiredAt }

// SelectedWorkerID returns the assigned worker's ID, or nil before assignment.
func (j *Job) SelectedWorkerID() *kernel.UUID { return j.selectedWorkerID }

// SelectedAt returns when the worker was selected, or nil.
func (j *Job) SelectedAt() *time.Time { return j.selectedAt }

// CompletedAt returns when the employer confirmed completion, or nil.
func (j *Job) CompletedAt() *time.Time { return j.completedAt }

// CancelledAt returns when the employer cancelled the posting, or nil.
func (j *Job) CancelledAt() *time.Time { return j.cancelledAt }

// EmployerRating returns the employer's rating of the worker, or nil.
func (j *Job) EmployerRating() *kernel.Rating { return j.employerRating }

// WorkerRating returns the worker's rating of the employer, or nil.
func (j *Job) WorkerRating() *kernel.Rating { return j.workerRating }

// Window returns a read view of the response window.
func (j *Job) Window() *ResponseWindow { return &j.window }

// CancelledApplications returns the workers who withdrew an application to
// this job. They may never re-apply.
func (j *Job) CancelledApplications() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(j.cancelledApplications))
	for id := range j.cancelledApplications {
		out = append(out, id)
	}
	return out
}

// HasCancelledApplication reports whether the worker previously withdrew from this job.
func (j *Job) HasCancelledApplication(workerID kernel.UUID) bool {
	_, ok := j.cancelledApplications[workerID]
	return ok
}

// transition validates and performs a status change. role is the claimed role
// of the acting principal; actor identity checks happen in the public methods.
func (j *Job) transition(to Status, role Role) error {
	if !CanTransition(j.status, to, role) {
		return newInvalidTransitionError(j.status, to, role, "edge is not allowed")
	}
	j.status = to
	return nil
}

// CanApply checks every application gate without mutating.
// Gate order matters: a duplicate or previously-cancelled worker is reported
// as such even after the window closed, and reaching the cap is reported as
// CapacityExceeded rather than WindowClosed.
func (j *Job) CanApply(workerID kernel.UUID) error {
	if j.window.HasResponse(workerID) {
		return ErrAlreadyApplied
	}
	if j.HasCancelledApplication(workerID) {
		return ErrPreviouslyCancelled
	}
	if j.window.ResponseCount() >= MaxResponses {
		return ErrCapacityExceeded
	}
	if j.status != StatusMatching {
		return ErrWindowClosed
	}
	return nil
}

// ApplyResult reports what an accepted application did to the window.
type ApplyResult struct {
	// WindowOpened is true when this was the first response and the caller
	// must schedule the one-shot close timer.
	WindowOpened bool
	// WindowFilled is true when this response reached MaxResponses and the
	// caller must close the window now.
	WindowFilled bool
	// ResponseCount is the number of responses after this application.
	ResponseCount int
}

// Apply records a worker's application. The caller is expected to have flipped
// the worker to busy already; CanApply gates must pass.
func (j *Job) Apply(workerID kernel.UUID, now time.Time) (ApplyResult, error) {
	if err := j.CanApply(workerID); err != nil {
		return ApplyResult{}, err
	}

	opened := !j.window.IsOpen()
	if opened {
		j.window.open(now)
	}
	j.window.add(workerID, now)

	return ApplyResult{
		WindowOpened:  opened,
		WindowFilled:  j.window.ResponseCount() >= MaxResponses,
		ResponseCount: j.window.ResponseCount(),
	}, nil
}

// CloseWindow closes the response window and advances a matching job to
// awaiting selection. Idempotent: closing an already-closed window is a no-op.
// Reports whether this call performed the close.
func (j *Job) CloseWindow() bool {
	closed := j.window.close()
	if j.status == StatusMatching {
		// System edge inside the matching super-state.
		j.status = StatusAwaitingSelection
	}
	return closed
}

// Withdraw removes a worker's application and bars them from re-applying.
// Allowed only while the job is still in the matching super-state.
func (j *Job) Withdraw(workerID kernel.UUID) error {
	if !j.window.HasResponse(workerID) {
		return ErrNotApplied
	}
	if !j.status.IsMatching() {
		return newInvalidTransitionError(j.status, j.status, RoleWorker, "applications can only be withdrawn before assignment")
	}

	j.window.remove(workerID)
	j.cancelledApplications[workerID] = struct{}{}
	return nil
}

// Assign selects a worker for the job. Only the employer may assign, and only
// a worker who actually applied can be selected. Selection is irreversible:
// from assigned the job can only move to pending, completed, or cancelled.
func (j *Job) Assign(workerID kernel.UUID, actorID kernel.UUID, now time.Time) error {
	if !CanTransition(j.status, StatusAssigned, RoleEmployer) {
		return newInvalidTransitionError(j.status, StatusAssigned, RoleEmployer, "edge is not allowed")
	}
	if !actorID.IsEqual(j.employerID) {
		return newPermissionError(j.status, StatusAssigned, "only the job employer can select a worker")
	}
	if !j.window.HasResponse(workerID) {
		return errs.NewValueIsInvalidErrorWithCause("selectedWorkerId", ErrNotApplied)
	}

	j.window.close()
	j.status = StatusAssigned
	j.selectedWorkerID = &workerID
	j.selectedAt = &now
	return nil
}

// MarkPending records the selected worker reporting their part done.
func (j *Job) MarkPending(actorID kernel.UUID) error {
	if !CanTransition(j.status, StatusPending, RoleWorker) {
		return newInvalidTransitionError(j.status, StatusPending, RoleWorker, "edge is not allowed")
	}
	if j.selectedWorkerID == nil || !actorID.IsEqual(*j.selectedWorkerID) {
		return newPermissionError(j.status, StatusPending, "only the selected worker can mark the job pending")
	}

	j.status = StatusPending
	return nil
}

// Complete finishes the job. Only the employer may complete.
func (j *Job) Complete(actorID kernel.UUID, now time.Time) error {
	if !CanTransition(j.status, StatusCompleted, RoleEmployer) {
		return newInvalidTransitionError(j.status, StatusCompleted, RoleEmployer, "edge is not allowed")
	}
	if !actorID.IsEqual(j.employerID) {
		return newPermissionError(j.status, StatusCompleted, "only the job employer can complete the job")
	}

	j.status = StatusCompleted
	j.completedAt = &now
	return nil
}

// Cancel withdraws the job. Only the employer may cancel, and only before the
// job reaches a terminal status.
func (j *Job) Cancel(actorID kernel.UUID, now time.Time) error {
	if !CanTransition(j.status, StatusCancelled, RoleEmployer) {
		return newInvalidTransitionError(j.status, StatusCancelled, RoleEmployer, "edge is not allowed")
	}
	if !actorID.IsEqual(j.employerID) {
		return newPermissionError(j.status, StatusCancelled, "only the job employer can cancel the job")
	}

	j.window.close()
	j.status = StatusCancelled
	j.cancelledAt = &now
	return nil
}

// IsExpirable reports whether the sweeper should expire this posting: still in
// the matching super-state, past its deadline, and not yet stamped.
func (j *Job) IsExpirable(now time.Time) bool {
	return j.status.IsMatching() && !j.expiresAt.After(now) && j.expiredAt == nil
}

// Expire force-expires a stale posting. System-triggered only; idempotent via
// the expiredAt stamp. Reports whether this call performed the expiry.
func (j *Job) Expire(now time.Time) (bool, error) {
	if j.expiredAt != nil {
		return false, nil
	}
	if !CanTransition(j.status, StatusExpired, RoleSystem) {
		return false, newInvalidTransitionError(j.status, StatusExpired, RoleSystem, "edge is not allowed")
	}

	j.window.close()
	j.status = StatusExpired
	j.expiredAt = &now
	return true, nil
}

// RateWorker stamps the employer's rating of the worker, at most once.
func (j *Job) RateWorker(rating kernel.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	if j.employerRating != nil {
		return ErrAlreadyRated
	}
	j.employerRating = &rating
	return nil
}

// RateEmployer stamps the worker's rating of the employer, at most once.
func (j *Job) RateEmployer(rating kernel.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}
	if j.workerRating != nil {
		return ErrAlreadyRated
	}
	j.workerRating = &rating
	return nil
}

// newPermissionError wraps ErrPermissionDenied with the attempted edge.
func newPermissionError(from, to Status, reason string) error {
	return &PermissionError{From: from, To: to, Reason: reason}
}

// PermissionError describes a transition rejected because the acting principal
// is not the one the edge requires (right edge, wrong actor).
type PermissionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *PermissionError) Error() string {
	return "permission denied on transition from " + e.From.String() + " to " + e.To.String() + ": " + e.Reason
}

func (e *PermissionError) Unwrap() error {
	return ErrPermissionDenied
}
