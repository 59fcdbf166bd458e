package middleware

import (
	"strings"

	"finance-backoffice/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity resolves the current employee from a bearer token when one is
// presented, and otherwise falls back to the seeded placeholder employee.
// The fallback keeps the single-user behavior of deployments that run
// without the login endpoint wired to a real directory.
func Identity(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		empNo := model.PlaceholderEmpNo
		empName := "홍길동"

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fiber.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
			}

			claims := token.Claims.(jwt.MapClaims)
			if v, ok := claims["empNo"].(string); ok {
				empNo = v
			}
			if v, ok := claims["empName"].(string); ok {
				empName = v
			}
		}

		c.Locals("empNo", empNo)
		c.Locals("empName", empName)
		return c.Next()
	}
}

// EmpNo returns the employee number resolved by Identity.
func EmpNo(c *fiber.Ctx) string {
	if v, ok := c.Locals("empNo").(string); ok {
		return v
	}
	return model.PlaceholderEmpNo
}

// EmpName returns the employee name resolved by Identity.
func EmpName(c *fiber.Ctx) string {
	if v, ok := c.Locals("empName").(string); ok {
		return v
	}
	return "홍길동"
}
