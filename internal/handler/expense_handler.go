package handler

import (
	"errors"
	"strconv"

	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/middleware"
	"finance-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
	log *zap.Logger
}

func NewExpenseHandler(svc *service.ExpenseService, log *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, log: log}
}

// GetDetails lists expense lines. Without a groupId (or with the literal
// string "null") it returns the unassigned pool the create screen picks from.
func (h *ExpenseHandler) GetDetails(c *fiber.Ctx) error {
	groupParam := c.Query("groupId")

	var groupID *uint
	if groupParam != "" && groupParam != "null" {
		id, err := strconv.Atoi(groupParam)
		if err != nil {
			return writeError(c, h.log, apperror.BadRequest("invalid groupId"))
		}
		v := uint(id)
		groupID = &v
	}

	details, err := h.svc.ListDetails(groupID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(details)
}

type detailRequest struct {
	ReceiptDate    string   `json:"receiptDate"`
	SettlementAmt  float64  `json:"settlementAmt"`
	AccountCode    *string  `json:"accountCode"`
	CostCenterCode *string  `json:"costCenterCode"`
	FundCenterCode *string  `json:"fundCenterCode"`
	WBSCode        *string  `json:"wbsCode"`
	Remark         *string  `json:"remark"`
	DeductibleYn   bool     `json:"deductibleYn"`
}

func (h *ExpenseHandler) CreateDetail(c *fiber.Ctx) error {
	var req detailRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	receiptDate, err := parseDate(req.ReceiptDate)
	if err != nil {
		return writeError(c, h.log, err)
	}

	detail, err := h.svc.CreateDetail(service.DetailInput{
		ReceiptDate:    receiptDate,
		SettlementAmt:  req.SettlementAmt,
		AccountCode:    req.AccountCode,
		CostCenterCode: req.CostCenterCode,
		FundCenterCode: req.FundCenterCode,
		WBSCode:        req.WBSCode,
		Remark:         req.Remark,
		DeductibleYn:   req.DeductibleYn,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

type detailPatchRequest struct {
	ReceiptDate    *string  `json:"receiptDate"`
	SettlementAmt  *float64 `json:"settlementAmt"`
	AccountCode    *string  `json:"accountCode"`
	CostCenterCode *string  `json:"costCenterCode"`
	FundCenterCode *string  `json:"fundCenterCode"`
	WBSCode        *string  `json:"wbsCode"`
	Remark         *string  `json:"remark"`
	DeductibleYn   *bool    `json:"deductibleYn"`
}

// UpdateDetail applies a partial edit: only the fields present in the body
// change.
func (h *ExpenseHandler) UpdateDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid detail id"))
	}

	var req detailPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	fields := map[string]interface{}{}
	if req.ReceiptDate != nil {
		receiptDate, err := parseDate(*req.ReceiptDate)
		if err != nil {
			return writeError(c, h.log, err)
		}
		fields["receipt_date"] = receiptDate
	}
	if req.SettlementAmt != nil {
		fields["settlement_amt"] = *req.SettlementAmt
	}
	if req.AccountCode != nil {
		fields["account_code"] = *req.AccountCode
	}
	if req.CostCenterCode != nil {
		fields["cost_center_code"] = *req.CostCenterCode
	}
	if req.FundCenterCode != nil {
		fields["fund_center_code"] = *req.FundCenterCode
	}
	if req.WBSCode != nil {
		fields["wbs_code"] = *req.WBSCode
	}
	if req.Remark != nil {
		fields["remark"] = *req.Remark
	}
	if req.DeductibleYn != nil {
		fields["deductible_yn"] = *req.DeductibleYn
	}
	if len(fields) == 0 {
		return writeError(c, h.log, apperror.BadRequest("no fields to update"))
	}

	detail, err := h.svc.UpdateDetail(uint(id), fields)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(detail)
}

func (h *ExpenseHandler) DeleteDetail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid detail id"))
	}

	if err := h.svc.DeleteDetail(uint(id)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

type bulkDeleteRequest struct {
	IDs []uint `json:"ids"`
}

// BulkDeleteDetails deletes a batch of cash/receipt lines in one atomic
// request, reporting per-item outcomes.
func (h *ExpenseHandler) BulkDeleteDetails(c *fiber.Ctx) error {
	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if len(req.IDs) == 0 {
		return writeError(c, h.log, apperror.BadRequest("ids are required"))
	}

	results, err := h.svc.BulkDeleteDetails(req.IDs)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message, "results": results})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

func (h *ExpenseHandler) GetGroups(c *fiber.Ctx) error {
	groups, err := h.svc.ListGroups()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(groups)
}

func (h *ExpenseHandler) GetGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid group id"))
	}

	group, err := h.svc.GetGroup(uint(id))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(group)
}

type saveGroupRequest struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	DetailIDs   []uint `json:"detailIds"`
	PostingDate string `json:"postingDate"`
}

func (h *ExpenseHandler) CreateGroup(c *fiber.Ctx) error {
	return h.saveGroup(c, nil)
}

func (h *ExpenseHandler) UpdateGroup(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid group id"))
	}
	groupID := uint(id)
	return h.saveGroup(c, &groupID)
}

func (h *ExpenseHandler) saveGroup(c *fiber.Ctx, groupID *uint) error {
	var req saveGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	postingDate, err := parseDate(req.PostingDate)
	if err != nil {
		return writeError(c, h.log, err)
	}

	group, err := h.svc.SaveGroup(service.SaveGroupInput{
		GroupID:     groupID,
		Status:      req.Status,
		Title:       req.Title,
		DetailIDs:   req.DetailIDs,
		PostingDate: postingDate,
		EmpNo:       middleware.EmpNo(c),
		EmpName:     middleware.EmpName(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	if groupID == nil {
		return c.Status(fiber.StatusCreated).JSON(group)
	}
	return c.JSON(group)
}

type bulkSubmitRequest struct {
	GroupIDs    []uint `json:"groupIds"`
	PostingDate string `json:"postingDate"`
}

// BulkSubmit submits a batch of SAVE-state groups with one shared posting
// date in one atomic request.
func (h *ExpenseHandler) BulkSubmit(c *fiber.Ctx) error {
	var req bulkSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}
	if len(req.GroupIDs) == 0 {
		return writeError(c, h.log, apperror.BadRequest("groupIds are required"))
	}

	postingDate, err := parseDate(req.PostingDate)
	if err != nil {
		return writeError(c, h.log, err)
	}

	results, err := h.svc.BulkSubmit(req.GroupIDs, postingDate)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message, "results": results})
		}
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"results": results})
}
