package repository

import (
	"finance-backoffice/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	GetByEmpNo(empNo string) (*model.Employee, error)
	Create(employee *model.Employee) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) GetByEmpNo(empNo string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.First(&employee, "emp_no = ?", empNo).Error
	return &employee, err
}

func (r *employeeRepository) Create(employee *model.Employee) error {
	return r.db.Create(employee).Error
}
