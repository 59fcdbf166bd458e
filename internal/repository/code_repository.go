package repository

import (
	"finance-backoffice/internal/model"

	"gorm.io/gorm"
)

type CodeRepository interface {
	ListMasters() ([]model.MasterCode, error)
	GetMaster(code string) (*model.MasterCode, error)
	CreateMaster(master *model.MasterCode) error
	UpdateMaster(code string, fields map[string]interface{}) (*model.MasterCode, error)
	DeleteMaster(code string) error
	CountCodes(masterCode string) (int64, error)

	ListByMaster(masterCode string) ([]model.Code, error)
	CreateCode(code *model.Code) error
	UpdateCode(code string, fields map[string]interface{}) (*model.Code, error)
	DeleteCode(code string) error
}

type codeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) CodeRepository {
	return &codeRepository{db}
}

func (r *codeRepository) ListMasters() ([]model.MasterCode, error) {
	var masters []model.MasterCode
	err := r.db.Preload("Codes").Order("code asc").Find(&masters).Error
	return masters, err
}

func (r *codeRepository) GetMaster(code string) (*model.MasterCode, error) {
	var master model.MasterCode
	err := r.db.First(&master, "code = ?", code).Error
	return &master, err
}

func (r *codeRepository) CreateMaster(master *model.MasterCode) error {
	return r.db.Create(master).Error
}

func (r *codeRepository) UpdateMaster(code string, fields map[string]interface{}) (*model.MasterCode, error) {
	if _, err := r.GetMaster(code); err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.MasterCode{}).Where("code = ?", code).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.GetMaster(code)
}

func (r *codeRepository) DeleteMaster(code string) error {
	res := r.db.Delete(&model.MasterCode{}, "code = ?", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *codeRepository) CountCodes(masterCode string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Code{}).Where("master_code = ?", masterCode).Count(&count).Error
	return count, err
}

func (r *codeRepository) ListByMaster(masterCode string) ([]model.Code, error) {
	var codes []model.Code
	err := r.db.Where("master_code = ?", masterCode).Order("sort_order asc").Find(&codes).Error
	return codes, err
}

func (r *codeRepository) CreateCode(code *model.Code) error {
	return r.db.Create(code).Error
}

func (r *codeRepository) UpdateCode(code string, fields map[string]interface{}) (*model.Code, error) {
	var existing model.Code
	if err := r.db.First(&existing, "code = ?", code).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Code{}).Where("code = ?", code).Updates(fields).Error; err != nil {
		return nil, err
	}
	var updated model.Code
	if err := r.db.First(&updated, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *codeRepository) DeleteCode(code string) error {
	res := r.db.Delete(&model.Code{}, "code = ?", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
