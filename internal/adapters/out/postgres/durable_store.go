package postgres

import (
	"context"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDurableStore implements ports.DurableStore over a GORM connection.
type GormDurableStore struct {
	db *gorm.DB
}

// NewGormDurableStore creates the durable mirror over the given connection.
func NewGormDurableStore(db *gorm.DB) *GormDurableStore {
	return &GormDurableStore{db: db}
}

// Migrate creates or updates the schema.
func (s *GormDurableStore) Migrate() error {
	return s.db.AutoMigrate(&JobDTO{}, &WorkerDTO{})
}

// SaveJob upserts a job record.
func (s *GormDurableStore) SaveJob(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := jobFromDomain(aggregate)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// SaveWorker upserts a user record.
func (s *GormDurableStore) SaveWorker(ctx context.Context, aggregate *worker.Worker) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := workerFromDomain(aggregate)
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

// LoadAll reads the complete persisted state for startup seeding.
func (s *GormDurableStore) LoadAll(ctx context.Context) (ports.State, error) {
	var jobDTOs []JobDTO
	if err := s.db.WithContext(ctx).Order("created_at").Find(&jobDTOs).Error; err != nil {
		return ports.State{}, err
	}

	var workerDTOs []WorkerDTO
	if err := s.db.WithContext(ctx).Order("name").Find(&workerDTOs).Error; err != nil {
		return ports.State{}, err
	}

	state := ports.State{
		Jobs:    make([]*job.Job, 0, len(jobDTOs)),
		Workers: make([]*worker.Worker, 0, len(workerDTOs)),
	}

	for _, dto := range jobDTOs {
		aggregate, err := jobToDomain(dto)
		if err != nil {
			return ports.State{}, err
		}
		state.Jobs = append(state.Jobs, aggregate)
	}

	for _, dto := range workerDTOs {
		aggregate, err := workerToDomain(dto)
		if err != nil {
			return ports.State{}, err
		}
		state.Workers = append(state.Workers, aggregate)
	}

	return state, nil
}
