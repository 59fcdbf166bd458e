package model

import "time"

// Employee backs the identity seam. The seeder creates the placeholder
// employee 12345/홍길동 so requests without a token still resolve to a
// usable identity.
type Employee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EmpNo     string    `json:"empNo" gorm:"size:20;unique;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Password  string    `json:"-" gorm:"size:100"`
	OrgCode   string    `json:"orgCode" gorm:"size:20"`
	OrgName   string    `json:"orgName" gorm:"size:100"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlaceholderEmpNo is the seeded fallback identity used when a request
// carries no login token.
const PlaceholderEmpNo = "12345"
