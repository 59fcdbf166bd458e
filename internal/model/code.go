package model

import "time"

// MasterCode is the top-level key of the two-level code catalog.
type MasterCode struct {
	Code        string    `json:"code" gorm:"primaryKey;size:50"`
	CodeName    string    `json:"codeName" gorm:"size:100;not null"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Codes []Code `json:"codes,omitempty" gorm:"foreignKey:MasterCode;references:Code"`
}

// Code is a value under a master code. Display order among siblings is
// SortOrder ascending.
type Code struct {
	Code        string    `json:"code" gorm:"primaryKey;size:50"`
	MasterCode  string    `json:"masterCode" gorm:"size:50;not null;index"`
	CodeName    string    `json:"codeName" gorm:"size:100;not null"`
	Description *string   `json:"description"`
	SortOrder   int       `json:"sortOrder" gorm:"default:0"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Master *MasterCode `json:"-" gorm:"foreignKey:MasterCode;references:Code"`
}

// Well-known master codes seeded at install time.
const (
	MasterMenuType      = "MENU_TYPE"
	MasterExpenseStatus = "EXPENSE_STATUS"
)
