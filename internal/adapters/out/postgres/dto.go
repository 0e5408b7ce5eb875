// Package postgres mirrors the in-memory state into PostgreSQL. It is the
// write-behind side of the store: saves are idempotent upserts issued after
// commit, and LoadAll rebuilds the full state on startup.
package postgres

import (
	"time"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"

	"github.com/google/uuid"
)

// JobDTO is the database representation of a job aggregate. The response
// window and the cancelled-application set are stored as JSONB documents:
// they are read and written only as part of the whole aggregate.
type JobDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployerID            uuid.UUID `gorm:"type:uuid;index"`
	Title                 string    `gorm:"not null"`
	Description           string    `gorm:"not null"`
	District              string    `gorm:"index"`
	HourlyRate            int       `gorm:"not null"`
	Duration              string
	Status                string    `gorm:"index"`
	CreatedAt             time.Time `gorm:"not null"`
	ExpiresAt             time.Time `gorm:"not null"`
	ExpiredAt             *time.Time
	SelectedWorkerID      *uuid.UUID `gorm:"type:uuid"`
	SelectedAt            *time.Time
	CompletedAt           *time.Time
	CancelledAt           *time.Time
	EmployerRating        *string
	WorkerRating          *string
	WindowOpen            bool
	FirstResponseAt       *time.Time
	Responses             []ResponseDTO `gorm:"type:jsonb;serializer:json"`
	CancelledApplications []uuid.UUID   `gorm:"type:jsonb;serializer:json"`
}

// TableName overrides GORM's naming convention.
func (JobDTO) TableName() string {
	return "jobs"
}

// ResponseDTO is one application inside the job's JSONB response list.
type ResponseDTO struct {
	WorkerID    uuid.UUID `json:"workerId"`
	RespondedAt time.Time `json:"respondedAt"`
}

// WorkerDTO is the database representation of a user aggregate.
type WorkerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null"`
	UserType       string    `gorm:"not null;index"`
	District       string    `gorm:"index"`
	MinRate        int
	MaxRate        int
	Skills         []string `gorm:"type:jsonb;serializer:json"`
	Locale         string
	Availability   string `gorm:"index"`
	CurrentJobID   *uuid.UUID `gorm:"type:uuid"`
	GoodRatings    int
	NeutralRatings int
	BadRatings     int
}

// TableName overrides GORM's naming convention.
func (WorkerDTO) TableName() string {
	return "users"
}

func jobFromDomain(aggregate *job.Job) JobDTO {
	window := aggregate.Window()

	responses := make([]ResponseDTO, 0, window.ResponseCount())
	for _, response := range window.Responses() {
		responses = append(responses, ResponseDTO{
			WorkerID:    response.WorkerID.Bytes(),
			RespondedAt: response.RespondedAt,
		})
	}

	cancelled := make([]uuid.UUID, 0)
	for _, workerID := range aggregate.CancelledApplications() {
		cancelled = append(cancelled, workerID.Bytes())
	}

	return JobDTO{
		ID:                    aggregate.ID().Bytes(),
		EmployerID:            aggregate.EmployerID().Bytes(),
		Title:                 aggregate.Title(),
		Description:           aggregate.Description(),
		District:              aggregate.District(),
		HourlyRate:            aggregate.HourlyRate(),
		Duration:              aggregate.Duration(),
		Status:                aggregate.Status().String(),
		CreatedAt:             aggregate.CreatedAt(),
		ExpiresAt:             aggregate.ExpiresAt(),
		ExpiredAt:             aggregate.ExpiredAt(),
		SelectedWorkerID:      uuidPtrFromDomain(aggregate.SelectedWorkerID()),
		SelectedAt:            aggregate.SelectedAt(),
		CompletedAt:           aggregate.CompletedAt(),
		CancelledAt:           aggregate.CancelledAt(),
		EmployerRating:        ratingPtrFromDomain(aggregate.EmployerRating()),
		WorkerRating:          ratingPtrFromDomain(aggregate.WorkerRating()),
		WindowOpen:            window.IsOpen(),
		FirstResponseAt:       window.FirstResponseAt(),
		Responses:             responses,
		CancelledApplications: cancelled,
	}
}

func jobToDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	employerID, err := kernel.UUIDFromBytes(dto.EmployerID[:])
	if err != nil {
		return nil, err
	}

	status, err := job.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	selectedWorkerID, err := uuidPtrToDomain(dto.SelectedWorkerID)
	if err != nil {
		return nil, err
	}

	responses := make([]job.Response, 0, len(dto.Responses))
	for _, response := range dto.Responses {
		workerID, respErr := kernel.UUIDFromBytes(response.WorkerID[:])
		if respErr != nil {
			return nil, respErr
		}
		responses = append(responses, job.Response{
			WorkerID:    workerID,
			RespondedAt: response.RespondedAt,
		})
	}

	cancelled := make([]kernel.UUID, 0, len(dto.CancelledApplications))
	for _, raw := range dto.CancelledApplications {
		workerID, cancErr := kernel.UUIDFromBytes(raw[:])
		if cancErr != nil {
			return nil, cancErr
		}
		cancelled = append(cancelled, workerID)
	}

	return job.RestoreJob(
		id,
		employerID,
		dto.Title,
		dto.Description,
		dto.District,
		dto.HourlyRate,
		dto.Duration,
		status,
		dto.CreatedAt,
		dto.ExpiresAt,
		dto.ExpiredAt,
		selectedWorkerID,
		dto.SelectedAt,
		dto.CompletedAt,
		dto.CancelledAt,
		ratingPtrToDomain(dto.EmployerRating),
		ratingPtrToDomain(dto.WorkerRating),
		job.RestoreResponseWindow(dto.WindowOpen, dto.FirstResponseAt, responses),
		cancelled,
	)
}

func workerFromDomain(aggregate *worker.Worker) WorkerDTO {
	ratings := aggregate.Ratings()

	return WorkerDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		UserType:       string(aggregate.UserType()),
		District:       aggregate.District(),
		MinRate:        aggregate.MinRate(),
		MaxRate:        aggregate.MaxRate(),
		Skills:         aggregate.Skills(),
		Locale:         aggregate.Locale(),
		Availability:   aggregate.Availability().String(),
		CurrentJobID:   uuidPtrFromDomain(aggregate.CurrentJobID()),
		GoodRatings:    ratings.Good,
		NeutralRatings: ratings.Neutral,
		BadRatings:     ratings.Bad,
	}
}

func workerToDomain(dto WorkerDTO) (*worker.Worker, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	availability, err := worker.AvailabilityFromString(dto.Availability)
	if err != nil {
		return nil, err
	}

	currentJobID, err := uuidPtrToDomain(dto.CurrentJobID)
	if err != nil {
		return nil, err
	}

	return worker.RestoreWorker(
		id,
		dto.Name,
		worker.Type(dto.UserType),
		dto.District,
		dto.MinRate,
		dto.MaxRate,
		dto.Skills,
		dto.Locale,
		availability,
		currentJobID,
		worker.RatingCounts{
			Good:    dto.GoodRatings,
			Neutral: dto.NeutralRatings,
			Bad:     dto.BadRatings,
		},
	)
}

func uuidPtrFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}

	raw := id.Bytes()
	return &raw
}

func uuidPtrToDomain(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}

	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func ratingPtrFromDomain(rating *kernel.Rating) *string {
	if rating == nil {
		return nil
	}

	raw := rating.String()
	return &raw
}

func ratingPtrToDomain(raw *string) *kernel.Rating {
	if raw == nil {
		return nil
	}

	rating := kernel.Rating(*raw)
	return &rating
}
