package model

import "time"

// Menu is a navigation entry. ParentID is a self-reference; a menu whose
// ParentID is nil (or points outside the loaded set) is a root. Type refers to
// a Code under the MENU_TYPE master and must match the parent's type; the menu
// service keeps that invariant by rewriting descendants whenever a type
// changes.
type Menu struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Path      *string   `json:"path" gorm:"size:200"`
	FilePath  *string   `json:"filePath" gorm:"size:200"`
	Icon      *string   `json:"icon" gorm:"size:50"`
	SortOrder int       `json:"sortOrder" gorm:"default:0"`
	Type      string    `json:"type" gorm:"size:50;not null;index"`
	ParentID  *uint     `json:"parentId" gorm:"index"`
	IsActive  bool      `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Parent   *Menu  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Menu `json:"-" gorm:"foreignKey:ParentID"`
}
