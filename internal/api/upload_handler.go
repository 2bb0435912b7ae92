package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/events"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/storage"
)

type UploadHandler struct {
	mediaStore storage.MediaStore
	publisher  events.EventPublisher
}

func NewUploadHandler(mediaStore storage.MediaStore, publisher events.EventPublisher) *UploadHandler {
	return &UploadHandler{mediaStore: mediaStore, publisher: publisher}
}

// UploadMedia accepts a multipart "media" field and hands it to the
// media host. The store rejects unsupported types and oversized files.
func (h *UploadHandler) UploadMedia(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	fileHeader, err := c.FormFile("media")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No file uploaded",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error uploading file",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	stored, err := h.mediaStore.Save(c.Context(), contentType, fileHeader.Size, file)

	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		slog.ErrorContext(c.UserContext(), "Error uploading file", slog.String("error", err.Error()))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error uploading file",
			"error":   err.Error(),
		})
	}

	go h.publisher.PublishMediaUploaded(auth.UserID, stored.URL, stored.ResourceType)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"url":          stored.URL,
		"filename":     stored.Filename,
		"resourceType": stored.ResourceType,
	})
}
