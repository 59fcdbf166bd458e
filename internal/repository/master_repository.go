package repository

import (
	"finance-backoffice/internal/model"

	"gorm.io/gorm"
)

// MasterRepository serves the read-mostly SAP lookup masters used by expense
// entry dropdowns.
type MasterRepository interface {
	ListAccounts() ([]model.Account, error)
	CreateAccount(account *model.Account) error
	ListCostCenters() ([]model.CostCenter, error)
	CreateCostCenter(costCenter *model.CostCenter) error
	ListFundCenters() ([]model.FundCenter, error)
	CreateFundCenter(fundCenter *model.FundCenter) error
	ListWBS() ([]model.WBS, error)
	CreateWBS(wbs *model.WBS) error
}

type masterRepository struct {
	db *gorm.DB
}

func NewMasterRepository(db *gorm.DB) MasterRepository {
	return &masterRepository{db}
}

func (r *masterRepository) ListAccounts() ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.Where("is_active = ?", true).Order("code asc").Find(&accounts).Error
	return accounts, err
}

func (r *masterRepository) CreateAccount(account *model.Account) error {
	return r.db.Create(account).Error
}

func (r *masterRepository) ListCostCenters() ([]model.CostCenter, error) {
	var costCenters []model.CostCenter
	err := r.db.Where("is_active = ?", true).Order("code asc").Find(&costCenters).Error
	return costCenters, err
}

func (r *masterRepository) CreateCostCenter(costCenter *model.CostCenter) error {
	return r.db.Create(costCenter).Error
}

func (r *masterRepository) ListFundCenters() ([]model.FundCenter, error) {
	var fundCenters []model.FundCenter
	err := r.db.Where("is_active = ?", true).Order("code asc").Find(&fundCenters).Error
	return fundCenters, err
}

func (r *masterRepository) CreateFundCenter(fundCenter *model.FundCenter) error {
	return r.db.Create(fundCenter).Error
}

func (r *masterRepository) ListWBS() ([]model.WBS, error) {
	var wbs []model.WBS
	err := r.db.Where("is_active = ?", true).Order("code asc").Find(&wbs).Error
	return wbs, err
}

func (r *masterRepository) CreateWBS(wbs *model.WBS) error {
	return r.db.Create(wbs).Error
}
