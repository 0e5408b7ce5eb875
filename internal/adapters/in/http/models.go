package http

import "time"

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name     string   `json:"name"`
	UserType string   `json:"userType"`
	District string   `json:"district"`
	MinRate  int      `json:"minRate"`
	MaxRate  int      `json:"maxRate"`
	Skills   []string `json:"skills"`
	Locale   string   `json:"locale"`
}

// CreateUserResponse returns the generated user id.
type CreateUserResponse struct {
	UserID string `json:"userId"`
}

// UserResponse is the profile returned by GET /users/:id.
type UserResponse struct {
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	UserType     string   `json:"userType"`
	District     string   `json:"district,omitempty"`
	MinRate      int      `json:"minRate,omitempty"`
	MaxRate      int      `json:"maxRate,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Locale       string   `json:"locale,omitempty"`
	Availability string   `json:"availability"`
	CurrentJobID *string  `json:"currentJobId,omitempty"`
	Ratings      Ratings  `json:"ratings"`
}

// Ratings is the per-user rating tally.
type Ratings struct {
	Good    int `json:"good"`
	Neutral int `json:"neutral"`
	Bad     int `json:"bad"`
}

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	EmployerID        string `json:"employerId"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	District          string `json:"district"`
	HourlyRate        int    `json:"hourlyRate"`
	Duration          string `json:"duration"`
	ExpirationMinutes int    `json:"expirationMinutes"`
}

// CreateJobResponse returns the generated job id.
type CreateJobResponse struct {
	JobID string `json:"jobId"`
}

// JobResponse is one job in a listing.
type JobResponse struct {
	JobID            string    `json:"jobId"`
	EmployerID       string    `json:"employerId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	District         string    `json:"district"`
	HourlyRate       int       `json:"hourlyRate"`
	Duration         string    `json:"duration,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	ResponseCount    int       `json:"responseCount"`
	WindowOpen       bool      `json:"windowOpen"`
	SelectedWorkerID *string   `json:"selectedWorkerId,omitempty"`
}

// MatchResponse is one ranked candidate from POST /jobs/:id/matches.
type MatchResponse struct {
	WorkerID  string `json:"workerId"`
	Score     int    `json:"matchScore"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ApplyRequest is the body of POST /jobs/:id/apply.
type ApplyRequest struct {
	WorkerID string `json:"workerId"`
}

// ApplyResponse reports the window state after a successful application.
type ApplyResponse struct {
	ResponseCount int  `json:"responseCount"`
	WindowOpen    bool `json:"windowOpen"`
}

// SelectWorkerRequest is the body of POST /jobs/:id/select.
type SelectWorkerRequest struct {
	EmployerID string `json:"employerId"`
	WorkerID   string `json:"workerId"`
}

// CancelApplicationRequest is the body of POST /jobs/:id/cancel-application.
type CancelApplicationRequest struct {
	WorkerID string `json:"workerId"`
}

// CancelJobRequest is the body of PUT /jobs/:id/cancel.
type CancelJobRequest struct {
	EmployerID string `json:"employerId"`
}

// EmployeeDoneRequest is the body of PUT /jobs/:id/employee-done. Rating is
// optional; when present the employer is rated in the same call.
type EmployeeDoneRequest struct {
	WorkerID string `json:"workerId"`
	Rating   string `json:"rating"`
}

// CompleteJobRequest is the body of PUT /jobs/:id/complete. Rating is
// optional; when present it is stamped on the selected worker.
type CompleteJobRequest struct {
	EmployerID string `json:"employerId"`
	Rating     string `json:"rating"`
}

// RateUserRequest is the body of POST /jobs/:id/rate.
type RateUserRequest struct {
	RaterID string `json:"raterId"`
	Rating  string `json:"rating"`
}

// ApplicantResponse is one applicant from GET /jobs/:id/applicants.
type ApplicantResponse struct {
	WorkerID    string    `json:"workerId"`
	Name        string    `json:"name"`
	District    string    `json:"district,omitempty"`
	MinRate     int       `json:"minRate,omitempty"`
	MaxRate     int       `json:"maxRate,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Ratings     Ratings   `json:"ratings"`
	RespondedAt time.Time `json:"respondedAt"`
}
