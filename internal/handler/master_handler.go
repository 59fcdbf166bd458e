package handler

import (
	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MasterHandler serves the SAP lookup masters backing the expense entry
// dropdowns.
type MasterHandler struct {
	repo repository.MasterRepository
	log  *zap.Logger
}

func NewMasterHandler(repo repository.MasterRepository, log *zap.Logger) *MasterHandler {
	return &MasterHandler{repo: repo, log: log}
}

type masterRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (r masterRequest) validate() error {
	if r.Code == "" || r.Name == "" {
		return apperror.BadRequest("code and name are required")
	}
	return nil
}

func (h *MasterHandler) GetAccounts(c *fiber.Ctx) error {
	accounts, err := h.repo.ListAccounts()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(accounts)
}

func (h *MasterHandler) CreateAccount(c *fiber.Ctx) error {
	var req masterRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if err := req.validate(); err != nil {
		return writeError(c, h.log, err)
	}

	account := model.Account{Code: req.Code, Name: req.Name, IsActive: true}
	if err := h.repo.CreateAccount(&account); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

func (h *MasterHandler) GetCostCenters(c *fiber.Ctx) error {
	costCenters, err := h.repo.ListCostCenters()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(costCenters)
}

func (h *MasterHandler) CreateCostCenter(c *fiber.Ctx) error {
	var req masterRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if err := req.validate(); err != nil {
		return writeError(c, h.log, err)
	}

	costCenter := model.CostCenter{Code: req.Code, Name: req.Name, IsActive: true}
	if err := h.repo.CreateCostCenter(&costCenter); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(costCenter)
}

func (h *MasterHandler) GetFundCenters(c *fiber.Ctx) error {
	fundCenters, err := h.repo.ListFundCenters()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fundCenters)
}

func (h *MasterHandler) CreateFundCenter(c *fiber.Ctx) error {
	var req masterRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if err := req.validate(); err != nil {
		return writeError(c, h.log, err)
	}

	fundCenter := model.FundCenter{Code: req.Code, Name: req.Name, IsActive: true}
	if err := h.repo.CreateFundCenter(&fundCenter); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fundCenter)
}

func (h *MasterHandler) GetWBS(c *fiber.Ctx) error {
	wbs, err := h.repo.ListWBS()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(wbs)
}

func (h *MasterHandler) CreateWBS(c *fiber.Ctx) error {
	var req masterRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if err := req.validate(); err != nil {
		return writeError(c, h.log, err)
	}

	wbs := model.WBS{Code: req.Code, Name: req.Name, IsActive: true}
	if err := h.repo.CreateWBS(&wbs); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(wbs)
}
