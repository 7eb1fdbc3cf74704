package entities

import "time"

// DealStage represents the pipeline stage of a deal
type DealStage string

const (
	DealStageLead        DealStage = "lead"
	DealStageQualified   DealStage = "qualified"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageWon         DealStage = "won"
	DealStageLost        DealStage = "lost"
)

// IsValid checks if the deal stage is a known value
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageLead, DealStageQualified, DealStageProposal,
		DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

// Deal represents a sales opportunity
type Deal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Amount      float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Stage       DealStage `gorm:"type:varchar(20);not null;default:'lead'" json:"stage"`
	Probability int       `gorm:"not null;default:0" json:"probability"` // win probability, 0-100

	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`

	CompanyID uint     `gorm:"not null;index" json:"company"`
	Company   *Company `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	ContactID *uint    `gorm:"index" json:"contact,omitempty"`
	Contact   *Contact `gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL" json:"-"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Deal
func (Deal) TableName() string {
	return "deals"
}
