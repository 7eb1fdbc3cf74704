package entities

import "time"

// Company represents a customer organization
type Company struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	Industry string `gorm:"type:varchar(100)" json:"industry"`
	Website  string `gorm:"type:varchar(255)" json:"website"`
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	Address  string `gorm:"type:text" json:"address"`
	Notes    string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}
