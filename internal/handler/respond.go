package handler

import (
	"errors"
	"time"

	"finance-backoffice/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// writeError maps errors onto HTTP responses: business-rule violations carry
// their own status, translated persistence errors map to 409/400/404, and
// anything else is logged and reported as a generic 500.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "record already exists"})
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "referenced record does not exist"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	default:
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

// parseDate accepts the date formats clients send: bare dates and RFC3339
// timestamps.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, apperror.BadRequest("invalid date: " + value)
}
