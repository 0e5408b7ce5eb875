package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jetbond/internal/core/application/usecases/commands"
	"jetbond/internal/core/application/usecases/queries"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
)

// ConnectionHandler upgrades an HTTP request to a push connection.
type ConnectionHandler interface {
	HandleConnection(w http.ResponseWriter, r *http.Request) error
}

// Handlers bundles the use case handlers the server routes to.
type Handlers struct {
	RegisterUser      commands.RegisterUserCommandHandler
	CreateJob         commands.CreateJobCommandHandler
	FindMatches       commands.FindMatchesCommandHandler
	ApplyToJob        commands.ApplyToJobCommandHandler
	SelectWorker      commands.SelectWorkerCommandHandler
	CancelApplication commands.CancelApplicationCommandHandler
	CancelJob         commands.CancelJobCommandHandler
	MarkEmployeeDone  commands.MarkEmployeeDoneCommandHandler
	CompleteJob       commands.CompleteJobCommandHandler
	RateUser          commands.RateUserCommandHandler

	GetJobs              queries.GetJobsQueryHandler
	GetJobApplicants     queries.GetJobApplicantsQueryHandler
	GetUser              queries.GetUserQueryHandler
	PendingNotifications queries.GetPendingNotificationsQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	connections ConnectionHandler
}

// NewServer creates a new HTTP server. connections may be nil when push
// delivery is disabled; the /ws route then answers 501.
func NewServer(handlers Handlers, connections ConnectionHandler) *Server {
	return &Server{handlers: handlers, connections: connections}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/users", s.CreateUser)
	e.GET("/users/:id", s.GetUser)
	e.GET("/users/:id/notifications", s.GetNotifications)

	e.POST("/jobs", s.CreateJob)
	e.GET("/jobs", s.GetJobs)
	e.POST("/jobs/:id/matches", s.FindMatches)
	e.POST("/jobs/:id/apply", s.ApplyToJob)
	e.GET("/jobs/:id/applicants", s.GetApplicants)
	e.POST("/jobs/:id/select", s.SelectWorker)
	e.POST("/jobs/:id/cancel-application", s.CancelApplication)
	e.PUT("/jobs/:id/cancel", s.CancelJob)
	e.PUT("/jobs/:id/employee-done", s.EmployeeDone)
	e.PUT("/jobs/:id/complete", s.CompleteJob)
	e.POST("/jobs/:id/rate", s.RateUser)

	e.GET("/ws", s.Connect)
}

// CreateUser handles POST /users - registers a worker or employer profile.
func (s *Server) CreateUser(ctx echo.Context) error {
	var req CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID := kernel.NewUUID()

	cmd, err := commands.NewRegisterUserCommand(
		userID,
		req.Name,
		worker.Type(req.UserType),
		req.District,
		req.MinRate,
		req.MaxRate,
		req.Skills,
		req.Locale,
	)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateUserResponse{UserID: userID.String()})
}

// GetUser handles GET /users/:id - returns a user's profile and availability.
func (s *Server) GetUser(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	query, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return problem(ctx, err)
	}

	user, err := s.handlers.GetUser.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UserResponse{
		UserID:       user.ID.String(),
		Name:         user.Name,
		UserType:     user.UserType,
		District:     user.District,
		MinRate:      user.MinRate,
		MaxRate:      user.MaxRate,
		Skills:       user.Skills,
		Locale:       user.Locale,
		Availability: user.Availability,
		CurrentJobID: uuidPtrString(user.CurrentJobID),
		Ratings: Ratings{
			Good:    user.GoodRatings,
			Neutral: user.NeutralRatings,
			Bad:     user.BadRatings,
		},
	})
}

// GetNotifications handles GET /users/:id/notifications - drains the user's
// unread offline notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid user id")
	}

	query, err := queries.NewGetPendingNotificationsQuery(userID)
	if err != nil {
		return problem(ctx, err)
	}

	pending, err := s.handlers.PendingNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, pending)
}

// CreateJob handles POST /jobs - posts a new job on behalf of an employer.
func (s *Server) CreateJob(ctx echo.Context) error {
	var req CreateJobRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employerID, err := kernel.UUIDFromString(req.EmployerID)
	if err != nil {
		return badRequest(ctx, "Invalid employer id")
	}

	jobID := kernel.NewUUID()

	cmd, err := commands.NewCreateJobCommand(
		jobID,
		employerID,
		req.Title,
		req.Description,
		req.District,
		req.HourlyRate,
		req.Duration,
		req.ExpirationMinutes,
	)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.CreateJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateJobResponse{JobID: jobID.String()})
}

// GetJobs handles GET /jobs - lists jobs visible to the requesting user.
func (s *Server) GetJobs(ctx echo.Context) error {
	requesterID, err := kernel.UUIDFromString(ctx.QueryParam("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid or missing userId")
	}

	query, err := queries.NewGetJobsQuery(requesterID, ctx.QueryParam("district"))
	if err != nil {
		return problem(ctx, err)
	}

	jobs, err := s.handlers.GetJobs.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		response[i] = JobResponse{
			JobID:            j.ID.String(),
			EmployerID:       j.EmployerID.String(),
			Title:            j.Title,
			Description:      j.Description,
			District:         j.District,
			HourlyRate:       j.HourlyRate,
			Duration:         j.Duration,
			Status:           j.Status,
			CreatedAt:        j.CreatedAt,
			ExpiresAt:        j.ExpiresAt,
			ResponseCount:    j.ResponseCount,
			WindowOpen:       j.WindowOpen,
			SelectedWorkerID: uuidPtrString(j.SelectedWorkerID),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// FindMatches handles POST /jobs/:id/matches - scores available workers
// against the job and notifies the ranked candidates.
func (s *Server) FindMatches(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	cmd, err := commands.NewFindMatchesCommand(jobID)
	if err != nil {
		return problem(ctx, err)
	}

	candidates, err := s.handlers.FindMatches.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	response := make([]MatchResponse, len(candidates))
	for i, candidate := range candidates {
		response[i] = MatchResponse{
			WorkerID:  candidate.WorkerID.String(),
			Score:     candidate.Score,
			Reasoning: candidate.Reasoning,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApplyToJob handles POST /jobs/:id/apply - records a worker's application.
func (s *Server) ApplyToJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req ApplyRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewApplyToJobCommand(jobID, workerID)
	if err != nil {
		return problem(ctx, err)
	}

	result, err := s.handlers.ApplyToJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return problem(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ApplyResponse{
		ResponseCount: result.ResponseCount,
		WindowOpen:    !result.WindowFilled,
	})
}

// GetApplicants handles GET /jobs/:id/applicants - lists the job's applicants
// in arrival order with their profiles.
func (s *Server) GetApplicants(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	query, err := queries.NewGetJobApplicantsQuery(jobID)
	if err != nil {
		return problem(ctx, err)
	}

	applicants, err := s.handlers.GetJobApplicants.Handle(ctx.Request().Context(), query)
	if err != nil {
		return problem(ctx, err)
	}

	response := make([]ApplicantResponse, len(applicants))
	for i, applicant := range applicants {
		response[i] = ApplicantResponse{
			WorkerID: applicant.WorkerID.String(),
			Name:     applicant.Name,
			District: applicant.District,
			MinRate:  applicant.MinRate,
			MaxRate:  applicant.MaxRate,
			Skills:   applicant.Skills,
			Ratings: Ratings{
				Good:    applicant.GoodRatings,
				Neutral: applicant.NeutralRatings,
				Bad:     applicant.BadRatings,
			},
			RespondedAt: applicant.RespondedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SelectWorker handles POST /jobs/:id/select - assigns the job to one of its
// applicants.
func (s *Server) SelectWorker(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req SelectWorkerRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employerID, err := kernel.UUIDFromString(req.EmployerID)
	if err != nil {
		return badRequest(ctx, "Invalid employer id")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewSelectWorkerCommand(jobID, employerID, workerID)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.SelectWorker.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelApplication handles POST /jobs/:id/cancel-application - withdraws a
// worker's pending application.
func (s *Server) CancelApplication(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req CancelApplicationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewCancelApplicationCommand(jobID, workerID)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.CancelApplication.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelJob handles PUT /jobs/:id/cancel - withdraws the whole job.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req CancelJobRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employerID, err := kernel.UUIDFromString(req.EmployerID)
	if err != nil {
		return badRequest(ctx, "Invalid employer id")
	}

	cmd, err := commands.NewCancelJobCommand(jobID, employerID)
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.CancelJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// EmployeeDone handles PUT /jobs/:id/employee-done - the selected worker
// declares their side of the job finished.
func (s *Server) EmployeeDone(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req EmployeeDoneRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewMarkEmployeeDoneCommand(jobID, workerID, kernel.Rating(req.Rating))
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.MarkEmployeeDone.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CompleteJob handles PUT /jobs/:id/complete - the employer closes out the
// job, optionally rating the worker in the same call.
func (s *Server) CompleteJob(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req CompleteJobRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	employerID, err := kernel.UUIDFromString(req.EmployerID)
	if err != nil {
		return badRequest(ctx, "Invalid employer id")
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, employerID, kernel.Rating(req.Rating))
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.CompleteJob.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// RateUser handles POST /jobs/:id/rate - stamps a rating for the other party
// of a completed job.
func (s *Server) RateUser(ctx echo.Context) error {
	jobID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid job id")
	}

	var req RateUserRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	raterID, err := kernel.UUIDFromString(req.RaterID)
	if err != nil {
		return badRequest(ctx, "Invalid rater id")
	}

	cmd, err := commands.NewRateUserCommand(jobID, raterID, kernel.Rating(req.Rating))
	if err != nil {
		return problem(ctx, err)
	}

	if err = s.handlers.RateUser.Handle(ctx.Request().Context(), cmd); err != nil {
		return problem(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// Connect handles GET /ws - upgrades the request to a push connection.
func (s *Server) Connect(ctx echo.Context) error {
	if s.connections == nil {
		return ctx.JSON(http.StatusNotImplemented, Error{
			Code:    http.StatusNotImplemented,
			Message: "Push notifications are disabled",
		})
	}

	return s.connections.HandleConnection(ctx.Response(), ctx.Request())
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func uuidPtrString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}

	s := id.String()

	return &s
}
