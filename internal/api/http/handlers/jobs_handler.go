package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/libenaigi/CUHIRE/internal/api/dto"
	"github.com/libenaigi/CUHIRE/internal/auth"
	"github.com/libenaigi/CUHIRE/internal/domain"
	"github.com/libenaigi/CUHIRE/internal/service"
	apperrors "github.com/libenaigi/CUHIRE/pkg/util"
)

// JobsHandler manages job posting endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	filter, err := parseJobQuery(c)
	if err != nil {
		return err
	}
	jobs, err := h.service.ListJobs(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewJobListResponse(jobs)})
}

// GetJob GET /jobs/:id.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}
	job, err := h.service.GetJob(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewJobResponse(job)})
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.UserContext(), principal.User, req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "job created successfully",
		"data":    dto.NewJobResponse(job),
	})
}

// UpdateJob PUT /jobs/:id.
func (h *JobsHandler) UpdateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	job, err := h.service.UpdateJob(c.UserContext(), principal.User, id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "job updated successfully",
		"data":    dto.NewJobResponse(job),
	})
}

// DeleteJob DELETE /jobs/:id. Jobs are deactivated, never removed.
func (h *JobsHandler) DeleteJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := jobIDParam(c)
	if err != nil {
		return err
	}
	if err := h.service.DeactivateJob(c.UserContext(), principal.User, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "job deleted successfully"})
}

func jobIDParam(c *fiber.Ctx) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewValidationError("invalid job id", map[string]any{"id": raw})
	}
	return id.String(), nil
}

func parseJobQuery(c *fiber.Ctx) (domain.JobFilter, error) {
	filter := domain.JobFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Location: strings.TrimSpace(c.Query("location")),
	}
	if raw := strings.TrimSpace(c.Query("jobType")); raw != "" {
		jt, err := domain.ParseJobType(raw)
		if err != nil {
			return filter, apperrors.NewFieldValidationError("invalid query", map[string]string{"jobType": err.Error()})
		}
		filter.JobType = &jt
	}
	if raw := c.Query("skills"); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filter.Skills = append(filter.Skills, skill)
			}
		}
	}
	return filter, nil
}
