package handler

import (
	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"
	"finance-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CodeHandler struct {
	repo repository.CodeRepository
	log  *zap.Logger
}

func NewCodeHandler(repo repository.CodeRepository, log *zap.Logger) *CodeHandler {
	return &CodeHandler{repo: repo, log: log}
}

type masterCodeResponse struct {
	model.MasterCode
	CodeCount int `json:"codeCount"`
}

func (h *CodeHandler) GetMasters(c *fiber.Ctx) error {
	masters, err := h.repo.ListMasters()
	if err != nil {
		return writeError(c, h.log, err)
	}

	resp := make([]masterCodeResponse, 0, len(masters))
	for _, master := range masters {
		count := len(master.Codes)
		master.Codes = nil
		resp = append(resp, masterCodeResponse{MasterCode: master, CodeCount: count})
	}
	return c.JSON(resp)
}

type masterCodeRequest struct {
	Code        string  `json:"code"`
	CodeName    string  `json:"codeName"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (h *CodeHandler) CreateMaster(c *fiber.Ctx) error {
	var req masterCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if req.Code == "" || req.CodeName == "" {
		return writeError(c, h.log, apperror.BadRequest("code and codeName are required"))
	}

	master := model.MasterCode{
		Code:        req.Code,
		CodeName:    req.CodeName,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.repo.CreateMaster(&master); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(master)
}

func (h *CodeHandler) UpdateMaster(c *fiber.Ctx) error {
	var req masterCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	fields := map[string]interface{}{
		"code_name":   req.CodeName,
		"description": req.Description,
		"is_active":   req.IsActive == nil || *req.IsActive,
	}
	master, err := h.repo.UpdateMaster(c.Params("code"), fields)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(master)
}

func (h *CodeHandler) DeleteMaster(c *fiber.Ctx) error {
	code := c.Params("code")

	count, err := h.repo.CountCodes(code)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if count > 0 {
		return writeError(c, h.log, apperror.BadRequest("master code has child codes; delete them first"))
	}

	if err := h.repo.DeleteMaster(code); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *CodeHandler) GetCodes(c *fiber.Ctx) error {
	masterCode := c.Query("masterCode")
	if masterCode == "" {
		return writeError(c, h.log, apperror.BadRequest("masterCode parameter is required"))
	}

	codes, err := h.repo.ListByMaster(masterCode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(codes)
}

type codeRequest struct {
	Code        string  `json:"code"`
	MasterCode  string  `json:"masterCode"`
	CodeName    string  `json:"codeName"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

func (h *CodeHandler) CreateCode(c *fiber.Ctx) error {
	var req codeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if req.Code == "" || req.MasterCode == "" || req.CodeName == "" {
		return writeError(c, h.log, apperror.BadRequest("code, masterCode, and codeName are required"))
	}

	code := model.Code{
		Code:        req.Code,
		MasterCode:  req.MasterCode,
		CodeName:    req.CodeName,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.repo.CreateCode(&code); err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(code)
}

func (h *CodeHandler) UpdateCode(c *fiber.Ctx) error {
	var req codeRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	fields := map[string]interface{}{
		"code_name":   req.CodeName,
		"description": req.Description,
		"sort_order":  req.SortOrder,
		"is_active":   req.IsActive == nil || *req.IsActive,
	}
	code, err := h.repo.UpdateCode(c.Params("code"), fields)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(code)
}

func (h *CodeHandler) DeleteCode(c *fiber.Ctx) error {
	if err := h.repo.DeleteCode(c.Params("code")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
