package handler

import (
	"strconv"

	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"
	"finance-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MenuHandler struct {
	svc *service.MenuService
	log *zap.Logger
}

func NewMenuHandler(svc *service.MenuService, log *zap.Logger) *MenuHandler {
	return &MenuHandler{svc: svc, log: log}
}

type parentSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type menuResponse struct {
	model.Menu
	ParentInfo    *parentSummary `json:"parent"`
	ChildrenCount int            `json:"childrenCount"`
}

// GetMenus returns the flat list the admin grid renders: every menu with a
// parent summary and its direct children count, ordered sortOrder asc then
// name asc.
func (h *MenuHandler) GetMenus(c *fiber.Ctx) error {
	menus, err := h.svc.List()
	if err != nil {
		return writeError(c, h.log, err)
	}

	childCounts := make(map[uint]int, len(menus))
	for _, menu := range menus {
		if menu.ParentID != nil {
			childCounts[*menu.ParentID]++
		}
	}

	resp := make([]menuResponse, 0, len(menus))
	for _, menu := range menus {
		item := menuResponse{Menu: menu, ChildrenCount: childCounts[menu.ID]}
		if menu.Parent != nil {
			item.ParentInfo = &parentSummary{ID: menu.Parent.ID, Name: menu.Parent.Name}
		}
		item.Parent = nil
		resp = append(resp, item)
	}
	return c.JSON(resp)
}

// GetTree returns the rooted forest for the navigation sidebar, optionally
// restricted to one menu type.
func (h *MenuHandler) GetTree(c *fiber.Ctx) error {
	tree, err := h.svc.Tree(c.Query("type"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if tree == nil {
		tree = []*service.MenuNode{}
	}
	return c.JSON(tree)
}

func (h *MenuHandler) CreateMenu(c *fiber.Ctx) error {
	var input service.MenuInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	menu, err := h.svc.Create(input)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(menu)
}

func (h *MenuHandler) UpdateMenu(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid menu id"))
	}

	var input service.MenuInput
	if err := c.BodyParser(&input); err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid request body"))
	}

	menu, err := h.svc.Update(uint(id), input)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(menu)
}

func (h *MenuHandler) DeleteMenu(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, apperror.BadRequest("invalid menu id"))
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
