package entities

import (
	"fmt"
	"time"
)

// Contact represents a person at a customer company
type Contact struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	Position  string `gorm:"type:varchar(100)" json:"position"`

	CompanyID *uint    `gorm:"index" json:"company,omitempty"`
	Company   *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:SET NULL" json:"-"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// FullName returns the contact's display name
func (c *Contact) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
