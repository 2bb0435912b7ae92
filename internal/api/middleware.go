package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/jwt"
	"github.com/Shivam-knight-owl/product-tour-platform/internal/repository"
)

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
)

const authContextKey = "authContext"

// AuthContext is the verified identity attached to a request after the
// bearer token checks out and the user row still exists.
type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

// CurrentUser returns the identity attached by AuthMiddleware or
// OptionalAuthMiddleware, if any.
func CurrentUser(c *fiber.Ctx) (AuthContext, bool) {
	auth, ok := c.Locals(authContextKey).(AuthContext)
	return auth, ok
}

// AuthMiddleware rejects requests without a valid bearer token. The
// role is reloaded from storage rather than trusted from the claims.
func AuthMiddleware(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, httpErr := authenticate(c, userRepo)
		if httpErr != nil {
			return c.Status(httpErr.Code).JSON(fiber.Map{"message": httpErr.Message})
		}

		c.Locals(authContextKey, *auth)

		return c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when a bearer token is
// present but lets anonymous requests through untouched. A token that is
// present but invalid is still rejected.
func OptionalAuthMiddleware(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}

		auth, httpErr := authenticate(c, userRepo)
		if httpErr != nil {
			return c.Status(httpErr.Code).JSON(fiber.Map{"message": httpErr.Message})
		}

		c.Locals(authContextKey, *auth)

		return c.Next()
	}
}

// RequireRoles restricts a route to the given role set, reporting the
// required and current roles on denial.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
		}

		for _, role := range roles {
			if auth.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message":  "You do not have permission to perform this action",
			"required": roles,
			"current":  auth.Role,
		})
	}
}

func authenticate(c *fiber.Ctx, userRepo repository.UserRepository) (*AuthContext, *fiber.Error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	claims, err := jwt.ValidateToken(parts[1])
	if err != nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Invalid or expired token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, fiber.NewError(fiber.StatusForbidden, "Invalid or expired token")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusForbidden, "Invalid or expired token")
	}

	// The token may outlive the account; the current role always comes
	// from storage.
	user, err := userRepo.FindByID(c.Context(), userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}

	return &AuthContext{UserID: user.ID, Role: user.Role}, nil
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		path := c.Path()
		statusStr := fmt.Sprintf("%d", statusCode)

		httpRequestTotal.WithLabelValues(method, path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(method, path, statusStr).Observe(duration)

		return err
	}
}
