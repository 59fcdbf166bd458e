package repository

import (
	"finance-backoffice/internal/model"

	"gorm.io/gorm"
)

type MenuRepository interface {
	GetAll() ([]model.Menu, error)
	GetAllByType(menuType string) ([]model.Menu, error)
	GetByID(id uint) (*model.Menu, error)
	GetChildren(parentID uint) ([]model.Menu, error)
	CountChildren(parentID uint) (int64, error)
	Create(menu *model.Menu) error
	Save(menu *model.Menu) error
	UpdateType(ids []uint, menuType string) error
	Delete(id uint) error
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db}
}

func (r *menuRepository) GetAll() ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.Preload("Parent").Order("sort_order asc, name asc").Find(&menus).Error
	return menus, err
}

func (r *menuRepository) GetAllByType(menuType string) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.Where("type = ?", menuType).Order("sort_order asc, name asc").Find(&menus).Error
	return menus, err
}

func (r *menuRepository) GetByID(id uint) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.First(&menu, id).Error
	return &menu, err
}

func (r *menuRepository) GetChildren(parentID uint) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.Where("parent_id = ?", parentID).Find(&menus).Error
	return menus, err
}

func (r *menuRepository) CountChildren(parentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Menu{}).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

func (r *menuRepository) Create(menu *model.Menu) error {
	return r.db.Create(menu).Error
}

func (r *menuRepository) Save(menu *model.Menu) error {
	return r.db.Save(menu).Error
}

func (r *menuRepository) UpdateType(ids []uint, menuType string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&model.Menu{}).Where("id IN ?", ids).Update("type", menuType).Error
}

func (r *menuRepository) Delete(id uint) error {
	res := r.db.Delete(&model.Menu{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
