package repository

import (
	"time"

	"finance-backoffice/internal/model"

	"gorm.io/gorm"
)

type ExpenseRepository interface {
	ListGroups() ([]model.Group, error)
	GetGroup(id uint) (*model.Group, error)
	CreateGroup(group *model.Group) error
	UpdateGroup(id uint, fields map[string]interface{}) error

	ListDetailsByGroup(groupID uint) ([]model.Detail, error)
	ListUnassignedDetails() ([]model.Detail, error)
	GetDetail(id uint) (*model.Detail, error)
	DetailIDsByGroup(groupID uint) ([]uint, error)
	CountDetails(ids []uint) (int64, error)
	CreateDetail(detail *model.Detail) error
	UpdateDetail(id uint, fields map[string]interface{}) (*model.Detail, error)
	DeleteDetail(id uint) error

	UnlinkDetails(groupID uint, except []uint) error
	LinkDetails(ids []uint, groupID uint, postingDate *time.Time) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db}
}

func (r *expenseRepository) ListGroups() ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Preload("Details.CardUsage").Order("created_at desc").Find(&groups).Error
	return groups, err
}

func (r *expenseRepository) GetGroup(id uint) (*model.Group, error) {
	var group model.Group
	err := r.db.Preload("Details.CardUsage").First(&group, id).Error
	return &group, err
}

func (r *expenseRepository) CreateGroup(group *model.Group) error {
	return r.db.Create(group).Error
}

// UpdateGroup applies field updates; callers establish existence first.
func (r *expenseRepository) UpdateGroup(id uint, fields map[string]interface{}) error {
	return r.db.Model(&model.Group{}).Where("id = ?", id).Updates(fields).Error
}

func (r *expenseRepository) ListDetailsByGroup(groupID uint) ([]model.Detail, error) {
	var details []model.Detail
	err := r.db.Preload("CardUsage").Where("group_id = ?", groupID).
		Order("created_at desc").Find(&details).Error
	return details, err
}

func (r *expenseRepository) ListUnassignedDetails() ([]model.Detail, error) {
	var details []model.Detail
	err := r.db.Preload("CardUsage").Where("group_id IS NULL").
		Order("created_at desc").Find(&details).Error
	return details, err
}

func (r *expenseRepository) GetDetail(id uint) (*model.Detail, error) {
	var detail model.Detail
	err := r.db.Preload("CardUsage").First(&detail, id).Error
	return &detail, err
}

func (r *expenseRepository) DetailIDsByGroup(groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Detail{}).Where("group_id = ?", groupID).Pluck("id", &ids).Error
	return ids, err
}

func (r *expenseRepository) CountDetails(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.Detail{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *expenseRepository) CreateDetail(detail *model.Detail) error {
	return r.db.Create(detail).Error
}

func (r *expenseRepository) UpdateDetail(id uint, fields map[string]interface{}) (*model.Detail, error) {
	if _, err := r.GetDetail(id); err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Detail{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetDetail(id)
}

func (r *expenseRepository) DeleteDetail(id uint) error {
	res := r.db.Delete(&model.Detail{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UnlinkDetails clears group_id for every detail of the group except the ids
// that stay linked, so a re-save never leaves kept rows transiently detached.
func (r *expenseRepository) UnlinkDetails(groupID uint, except []uint) error {
	q := r.db.Model(&model.Detail{}).Where("group_id = ?", groupID)
	if len(except) > 0 {
		q = q.Where("id NOT IN ?", except)
	}
	return q.Update("group_id", nil).Error
}

func (r *expenseRepository) LinkDetails(ids []uint, groupID uint, postingDate *time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	fields := map[string]interface{}{"group_id": groupID}
	if postingDate != nil {
		fields["posting_date"] = *postingDate
	}
	return r.db.Model(&model.Detail{}).Where("id IN ?", ids).Updates(fields).Error
}
