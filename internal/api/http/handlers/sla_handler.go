package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tracker-service/internal/api/dto"
	"github.com/spec-kit/tracker-service/internal/service"
	"github.com/spec-kit/tracker-service/internal/sla"
	apperrors "github.com/spec-kit/tracker-service/pkg/util"
)

// SlaHandler exposes the SLA configuration and reporting endpoints.
type SlaHandler struct {
	service *service.SlaService
}

// NewSlaHandler constructs handler.
func NewSlaHandler(slaService *service.SlaService) *SlaHandler {
	return &SlaHandler{service: slaService}
}

// GetConfig GET /sla/config.
func (h *SlaHandler) GetConfig(c *fiber.Ctx) error {
	hours, err := h.service.WorkingHours(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WorkingHoursToPayload(hours)})
}

// UpdateConfig PUT /sla/config.
func (h *SlaHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.WorkingHoursPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	hours, err := dto.WorkingHoursFromPayload(req)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	updated, err := h.service.UpdateWorkingHours(c.Context(), hours)
	if err != nil {
		if sla.IsConfigError(err) {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WorkingHoursToPayload(updated)})
}

// ListPolicies GET /sla/policies.
func (h *SlaHandler) ListPolicies(c *fiber.Ctx) error {
	policies, err := h.service.Policies(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PolicyPayload, 0, len(policies))
	for _, policy := range policies {
		items = append(items, dto.PolicyPayload{
			ID:                   policy.ID,
			Priority:             policy.Priority,
			MaxResolutionMinutes: policy.MaxResolutionMinutes,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ReplacePolicies PUT /sla/policies.
func (h *SlaHandler) ReplacePolicies(c *fiber.Ctx) error {
	var req dto.ReplacePoliciesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	inputs := make([]service.PolicyInput, 0, len(req.Policies))
	for _, policy := range req.Policies {
		inputs = append(inputs, service.PolicyInput{
			Priority:             policy.Priority,
			MaxResolutionMinutes: policy.MaxResolutionMinutes,
		})
	}
	policies, err := h.service.ReplacePolicies(c.Context(), inputs)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	items := make([]dto.PolicyPayload, 0, len(policies))
	for _, policy := range policies {
		items = append(items, dto.PolicyPayload{
			ID:                   policy.ID,
			Priority:             policy.Priority,
			MaxResolutionMinutes: policy.MaxResolutionMinutes,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Report GET /sla/report?window=daily|weekly|monthly.
func (h *SlaHandler) Report(c *fiber.Ctx) error {
	window, err := sla.ParseWindow(c.Query("window", string(sla.WindowMonthly)))
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	rows, err := h.service.ComplianceReport(c.Context(), window, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"window": window,
			"rows":   dto.ComplianceRows(rows),
		},
	})
}
