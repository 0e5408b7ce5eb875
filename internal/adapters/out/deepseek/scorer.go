// Package deepseek scores job candidates through the DeepSeek chat-completions
// API. The model receives the job posting plus the candidate profiles and
// answers with a JSON document of per-candidate scores. Every failure mode,
// from transport errors to a malformed answer, surfaces as
// services.ErrScoringUnavailable so the ranking service can fall back to its
// local heuristic.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"jetbond/internal/core/domain/model/job"
	"jetbond/internal/core/domain/model/kernel"
	"jetbond/internal/core/domain/model/worker"
	"jetbond/internal/core/domain/services"
)

const (
	// DefaultBaseURL is the public chat-completions endpoint.
	DefaultBaseURL = "https://api.deepseek.com/v1/chat/completions"

	modelName      = "deepseek-chat"
	temperature    = 0.3
	maxTokens      = 2000
	requestTimeout = 30 * time.Second

	systemPrompt = "You are an expert job matching AI that analyzes job requirements " +
		"and worker profiles to provide accurate match scores. Respond only with valid JSON."
)

// Scorer implements services.MatchScorer over the DeepSeek API.
type Scorer struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewScorer creates a scorer. baseURL falls back to DefaultBaseURL when
// empty. An empty apiKey yields a scorer that always reports
// services.ErrScoringUnavailable, which keeps the service on the heuristic
// path without special-casing configuration.
func NewScorer(apiKey, baseURL string, logger *slog.Logger) *Scorer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Scorer{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "deepseek_scorer"),
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type matchResult struct {
	Matches []struct {
		EmployeeID string `json:"employeeId"`
		MatchScore int    `json:"matchScore"`
		Reasoning  string `json:"reasoning"`
	} `json:"matches"`
}

type workerProfile struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	District string              `json:"district"`
	MinRate  int                 `json:"minRate"`
	MaxRate  int                 `json:"maxRate"`
	Skills   []string            `json:"skills"`
	Ratings  worker.RatingCounts `json:"ratings"`
}

// ScoreCandidates asks the model to score the given workers for the job.
func (s *Scorer) ScoreCandidates(
	ctx context.Context,
	j *job.Job,
	workers []*worker.Worker,
	locale string,
) ([]services.Candidate, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: api key is not configured", services.ErrScoringUnavailable)
	}

	prompt, err := buildPrompt(j, workers, locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrScoringUnavailable, err)
	}

	content, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrScoringUnavailable, err)
	}

	var result matchResult
	if err = json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed model answer: %w", services.ErrScoringUnavailable, err)
	}

	return s.toCandidates(result, workers), nil
}

func (s *Scorer) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: modelName,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chat chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("response has no choices")
	}

	return chat.Choices[0].Message.Content, nil
}

// toCandidates maps model output back onto the actual pool. Entries the model
// invented, duplicated, or mangled are dropped, and scores are clamped to
// [0, 100].
func (s *Scorer) toCandidates(result matchResult, workers []*worker.Worker) []services.Candidate {
	pool := make(map[kernel.UUID]struct{}, len(workers))
	for _, w := range workers {
		pool[w.ID()] = struct{}{}
	}

	candidates := make([]services.Candidate, 0, len(result.Matches))
	for _, match := range result.Matches {
		workerID, err := kernel.UUIDFromString(match.EmployeeID)
		if err != nil {
			s.logger.Warn("dropping match with malformed worker id", "employeeId", match.EmployeeID)
			continue
		}
		if _, ok := pool[workerID]; !ok {
			s.logger.Warn("dropping match for worker outside the pool", "workerId", workerID.String())
			continue
		}
		delete(pool, workerID)

		candidates = append(candidates, services.Candidate{
			WorkerID:  workerID,
			Score:     clampScore(match.MatchScore),
			Reasoning: match.Reasoning,
		})
	}

	return candidates
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func buildPrompt(j *job.Job, workers []*worker.Worker, locale string) (string, error) {
	profiles := make([]workerProfile, 0, len(workers))
	for _, w := range workers {
		profiles = append(profiles, workerProfile{
			ID:       w.ID().String(),
			Name:     w.Name(),
			District: w.District(),
			MinRate:  w.MinRate(),
			MaxRate:  w.MaxRate(),
			Skills:   w.Skills(),
			Ratings:  w.Ratings(),
		})
	}

	encoded, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return "", err
	}

	language := "the language tagged " + locale
	if locale == "" || locale == "en" {
		language = "English"
	}

	return fmt.Sprintf(`Analyze this job posting and match it with available workers.

JOB DETAILS:
- Title: %s
- Description: %s
- District: %s
- Hourly Rate: $%d
- Duration: %s

AVAILABLE WORKERS:
%s

MATCHING CRITERIA:
1. Skills alignment (40%% weight)
2. Location preference (25%% weight)
3. Rate compatibility (20%% weight)
4. Experience relevance (10%% weight)
5. Language compatibility (5%% weight)

For each worker provide a match score (0-100) and reasoning written in %s.

Respond with JSON format:
{
  "matches": [
    {
      "employeeId": "string",
      "matchScore": number,
      "reasoning": "string"
    }
  ]
}

Sort matches by score, highest first.`,
		j.Title(), j.Description(), j.District(), j.HourlyRate(), j.Duration(),
		string(encoded), language), nil
}
