package service

import (
	"errors"
	"sort"
	"strings"

	"finance-backoffice/internal/apperror"
	"finance-backoffice/internal/model"
	"finance-backoffice/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MenuNode is a menu with its resolved position in the navigation tree.
// Level is the depth from the root (roots are 0).
type MenuNode struct {
	model.Menu
	Level    int         `json:"level"`
	Children []*MenuNode `json:"children"`
}

// MenuInput carries the writable menu fields for create and update.
type MenuInput struct {
	Name      string  `json:"name"`
	Path      *string `json:"path"`
	FilePath  *string `json:"filePath"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sortOrder"`
	Type      string  `json:"type"`
	ParentID  *uint   `json:"parentId"`
	IsActive  *bool   `json:"isActive"`
}

// MenuService owns every menu write so the parent/child type invariant is
// enforced in one place, inside one transaction per mutation.
type MenuService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMenuService(db *gorm.DB, log *zap.Logger) *MenuService {
	return &MenuService{db: db, log: log}
}

func (s *MenuService) List() ([]model.Menu, error) {
	return repository.NewMenuRepository(s.db).GetAll()
}

// Tree returns the rooted forest for one menu type, or for all menus when
// menuType is empty.
func (s *MenuService) Tree(menuType string) ([]*MenuNode, error) {
	repo := repository.NewMenuRepository(s.db)
	var (
		menus []model.Menu
		err   error
	)
	if menuType != "" {
		menus, err = repo.GetAllByType(menuType)
	} else {
		menus, err = repo.GetAll()
	}
	if err != nil {
		return nil, err
	}
	return BuildTree(menus), nil
}

// BuildTree converts a flat menu list into a forest. A menu is a root when
// its ParentID is nil or refers to a record outside the input set. Children
// are ordered by sortOrder ascending, ties broken by name.
func BuildTree(menus []model.Menu) []*MenuNode {
	nodes := make(map[uint]*MenuNode, len(menus))
	for i := range menus {
		nodes[menus[i].ID] = &MenuNode{Menu: menus[i], Children: []*MenuNode{}}
	}

	var roots []*MenuNode
	for _, menu := range menus {
		node := nodes[menu.ID]
		if menu.ParentID != nil {
			if parent, ok := nodes[*menu.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	sortSiblings(roots)
	for _, root := range roots {
		assignLevels(root, 0)
	}
	return roots
}

func sortSiblings(nodes []*MenuNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SortOrder != nodes[j].SortOrder {
			return nodes[i].SortOrder < nodes[j].SortOrder
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, node := range nodes {
		sortSiblings(node.Children)
	}
}

func assignLevels(node *MenuNode, level int) {
	node.Level = level
	for _, child := range node.Children {
		assignLevels(child, level+1)
	}
}

func (s *MenuService) Create(input MenuInput) (*model.Menu, error) {
	if input.Name == "" || input.Type == "" {
		return nil, apperror.BadRequest("name and type are required")
	}

	menu := model.Menu{
		Name:      input.Name,
		Path:      input.Path,
		FilePath:  input.FilePath,
		Icon:      input.Icon,
		SortOrder: input.SortOrder,
		Type:      input.Type,
		ParentID:  input.ParentID,
		IsActive:  input.IsActive == nil || *input.IsActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewMenuRepository(tx)

		if menu.FilePath == nil || *menu.FilePath == "" {
			filePath, err := s.deriveFilePath(repo, input.Name, input.ParentID)
			if err != nil {
				return err
			}
			menu.FilePath = &filePath
		}

		return repo.Create(&menu)
	})
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// deriveFilePath builds the advisory physical path for a menu created without
// one: the slugged name, prefixed with the parent's file path when present.
// Not validated for uniqueness.
func (s *MenuService) deriveFilePath(repo repository.MenuRepository, name string, parentID *uint) (string, error) {
	slug := Slugify(name)
	if parentID == nil {
		return "/" + slug, nil
	}
	parent, err := repo.GetByID(*parentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "/" + slug, nil
		}
		return "", err
	}
	if parent.FilePath == nil || *parent.FilePath == "" {
		return "/" + slug, nil
	}
	return strings.TrimSuffix(*parent.FilePath, "/") + "/" + slug, nil
}

// Slugify lower-cases and hyphenates a menu name for path generation.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}

func (s *MenuService) Update(id uint, input MenuInput) (*model.Menu, error) {
	if input.Name == "" || input.Type == "" {
		return nil, apperror.BadRequest("name and type are required")
	}
	if input.ParentID != nil && *input.ParentID == id {
		return nil, apperror.BadRequest("a menu cannot be its own parent")
	}

	var updated *model.Menu
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewMenuRepository(tx)

		menu, err := repo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("menu not found")
			}
			return err
		}

		if input.ParentID != nil {
			if err := s.checkCycle(repo, id, *input.ParentID); err != nil {
				return err
			}
		}

		typeChanged := menu.Type != input.Type

		menu.Name = input.Name
		menu.Path = input.Path
		menu.FilePath = input.FilePath
		menu.Icon = input.Icon
		menu.SortOrder = input.SortOrder
		menu.Type = input.Type
		menu.ParentID = input.ParentID
		if input.IsActive != nil {
			menu.IsActive = *input.IsActive
		}

		if err := repo.Save(menu); err != nil {
			return err
		}

		// The type invariant is maintained by rewriting descendants, never
		// by rejecting the update.
		if typeChanged {
			if err := s.cascadeType(repo, id, input.Type); err != nil {
				return err
			}
			s.log.Info("cascaded menu type to descendants",
				zap.Uint("menuId", id), zap.String("type", input.Type))
		}

		updated = menu
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// checkCycle walks the ancestor chain of the proposed parent and rejects the
// update when the menu being moved appears in it.
func (s *MenuService) checkCycle(repo repository.MenuRepository, id, parentID uint) error {
	seen := map[uint]bool{id: true}
	current := parentID
	for {
		if seen[current] {
			return apperror.BadRequest("a menu cannot be its own ancestor")
		}
		seen[current] = true

		parent, err := repo.GetByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Missing parent surfaces as an FK violation on save.
				return nil
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

// cascadeType overwrites the type on every transitive descendant, level by
// level from the changed node.
func (s *MenuService) cascadeType(repo repository.MenuRepository, id uint, menuType string) error {
	frontier := []uint{id}
	for len(frontier) > 0 {
		var next []uint
		for _, parentID := range frontier {
			children, err := repo.GetChildren(parentID)
			if err != nil {
				return err
			}
			for _, child := range children {
				next = append(next, child.ID)
			}
		}
		if len(next) == 0 {
			return nil
		}
		if err := repo.UpdateType(next, menuType); err != nil {
			return err
		}
		frontier = next
	}
	return nil
}

func (s *MenuService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewMenuRepository(tx)

		count, err := repo.CountChildren(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.BadRequest("menu has child menus; delete them first")
		}

		if err := repo.Delete(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("menu not found")
			}
			return err
		}
		return nil
	})
}
