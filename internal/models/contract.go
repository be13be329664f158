// internal/models/contract.go
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/musichub/musichub-backend/internal/domain"
)

// Contract is a label manager's agreement with an artist. EndDate and, partly, Status are
// derived on every write; see domain.ApplyContractTerms.
type Contract struct {
	BaseModel
	ManagerID            uuid.UUID             `json:"manager_id" gorm:"size:36;not null;index"`
	ArtistID             uuid.UUID             `json:"artist_id" gorm:"size:36;not null;index"`
	ContractType         domain.ContractType   `json:"contract_type" gorm:"type:varchar(30);not null"`
	Status               domain.ContractStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ArtistRoyaltyPercent float64               `json:"artist_royalty_percent" gorm:"type:decimal(5,2);not null"`
	LabelRoyaltyPercent  float64               `json:"label_royalty_percent" gorm:"type:decimal(5,2);not null"`
	DurationMonths       int                   `json:"duration_months" gorm:"not null"`
	StartDate            time.Time             `json:"start_date" gorm:"type:date;not null"`
	EndDate              time.Time             `json:"end_date" gorm:"type:date;not null;index"`
	Description          string                `json:"description,omitempty" gorm:"type:text"`
	Notes                string                `json:"notes,omitempty" gorm:"type:text"`

	// Relationships
	Manager *User `json:"manager,omitempty" gorm:"foreignKey:ManagerID;constraint:OnDelete:CASCADE"`
	Artist  *User `json:"artist,omitempty" gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
}
