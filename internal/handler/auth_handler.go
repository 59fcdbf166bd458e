package handler

import (
	"time"

	"finance-backoffice/config"
	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	repo repository.EmployeeRepository
	cfg  config.AuthConfig
	log  *zap.Logger
}

func NewAuthHandler(repo repository.EmployeeRepository, cfg config.AuthConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{repo: repo, cfg: cfg, log: log}
}

type loginRequest struct {
	EmpNo    string `json:"empNo"`
	Password string `json:"password"`
}

// Login verifies the employee's password and issues a bearer token the
// identity middleware accepts.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if req.EmpNo == "" || req.Password == "" {
		return writeError(c, h.log, apperror.BadRequest("empNo and password are required"))
	}

	employee, err := h.repo.GetByEmpNo(req.EmpNo)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid empNo or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid empNo or password"})
	}

	claims := jwt.MapClaims{
		"empNo":   employee.EmpNo,
		"empName": employee.Name,
		"exp":     time.Now().Add(time.Duration(h.cfg.TokenExpiry) * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"token": signed, "employee": employee})
}
