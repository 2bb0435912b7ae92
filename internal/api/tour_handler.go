package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/model"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/service"
)

type TourHandler struct {
	tourService service.TourService
	validate    *validator.Validate
}

func NewTourHandler(tourService service.TourService) *TourHandler {
	return &TourHandler{
		tourService: tourService,
		validate:    validator.New(),
	}
}

type CreateTourRequest struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
	IsPublic    bool    `json:"isPublic"`
}

type UpdateTourRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

type CreateStepRequest struct {
	Title    string  `json:"title" validate:"required,min=1"`
	Body     *string `json:"body,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Order    *int    `json:"order" validate:"required,gte=0"`
}

type UpdateStepRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Body     *string `json:"body,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Order    *int    `json:"order,omitempty" validate:"omitempty,gte=0"`
}

func (h *TourHandler) ListTours(c *fiber.Ctx) error {
	sort := repository.SortByCreatedAt
	if c.Query("sort") == "views" {
		sort = repository.SortByViews
	}

	var userID *uuid.UUID
	if auth, ok := CurrentUser(c); ok {
		userID = &auth.UserID
	}

	tours, err := h.tourService.ListTours(c.Context(), userID, sort)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching tours"})
	}

	return c.Status(fiber.StatusOK).JSON(tours)
}

func (h *TourHandler) GetTour(c *fiber.Ctx) error {
	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Tour not found"})
	}

	var viewerID *uuid.UUID
	if auth, ok := CurrentUser(c); ok {
		viewerID = &auth.UserID
	}

	tour, err := h.tourService.GetTour(c.Context(), tourID, viewerID)

	if err != nil {
		switch {
		case errors.Is(err, service.ErrTourNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Tour not found"})
		case errors.Is(err, service.ErrTourPrivate):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. This tour is private."})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching tour"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(tour)
}

func (h *TourHandler) CreateTour(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	var request CreateTourRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input", "details": err.Error()})
	}

	tour := &model.Tour{
		UserID:      auth.UserID,
		Title:       request.Title,
		Description: request.Description,
		IsPublic:    request.IsPublic,
	}

	createdTour, err := h.tourService.CreateTour(c.Context(), tour)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error creating tour"})
	}

	return c.Status(fiber.StatusCreated).JSON(createdTour)
}

func (h *TourHandler) UpdateTour(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. You can only update your own tours."})
	}

	var request UpdateTourRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input", "details": err.Error()})
	}

	tour, err := h.tourService.UpdateTour(c.Context(), tourID, auth.UserID, repository.TourUpdate{
		Title:       request.Title,
		Description: request.Description,
		IsPublic:    request.IsPublic,
	})

	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. You can only update your own tours."})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating tour"})
	}

	return c.Status(fiber.StatusOK).JSON(tour)
}

func (h *TourHandler) DeleteTour(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	tourID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. You can only delete your own tours."})
	}

	if err := h.tourService.DeleteTour(c.Context(), tourID, auth.UserID); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. You can only delete your own tours."})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting tour"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TourHandler) AddStep(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	tourID, err := uuid.Parse(c.Params("tourId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	var request CreateStepRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input", "details": err.Error()})
	}

	step := &model.Step{
		TourID:   tourID,
		Title:    request.Title,
		Body:     request.Body,
		ImageURL: request.ImageURL,
		Order:    *request.Order,
	}

	createdStep, err := h.tourService.AddStep(c.Context(), auth.UserID, step)

	if err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		}

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error adding step"})
	}

	return c.Status(fiber.StatusCreated).JSON(createdStep)
}

func (h *TourHandler) UpdateStep(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	tourID, err := uuid.Parse(c.Params("tourId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	stepID, err := uuid.Parse(c.Params("stepId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Step not found"})
	}

	var request UpdateStepRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input", "details": err.Error()})
	}

	step, err := h.tourService.UpdateStep(c.Context(), tourID, stepID, auth.UserID, repository.StepUpdate{
		Title:    request.Title,
		Body:     request.Body,
		ImageURL: request.ImageURL,
		Order:    request.Order,
	})

	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		case errors.Is(err, service.ErrStepNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Step not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error updating step"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(step)
}

func (h *TourHandler) DeleteStep(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	tourID, err := uuid.Parse(c.Params("tourId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}

	stepID, err := uuid.Parse(c.Params("stepId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Step not found"})
	}

	if err := h.tourService.DeleteStep(c.Context(), tourID, stepID, auth.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
		case errors.Is(err, service.ErrStepNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Step not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error deleting step"})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
