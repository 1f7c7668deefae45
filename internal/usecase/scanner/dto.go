package scanner

import (
	"time"

	domainScanner "stocky-backend/internal/domain/scanner"
	"stocky-backend/internal/usecase/inventory"
)

type ScanRequest struct {
	UPC       string `json:"upc" validate:"required,min=8,max=20"`
	ScannerID string `json:"scanner_id" validate:"omitempty,max=100"`
}

type ScanResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Item    *inventory.ItemResponse   `json:"item"`
	SKUs    []inventory.SKUResponse   `json:"skus"`
}

type AssociateRequest struct {
	ScannerID string `json:"scanner_id" validate:"required,min=1,max=100"`
	Username  string `json:"username" validate:"omitempty,min=3,max=50"`
}

type StatusResponse struct {
	ScannerID      string     `json:"scanner_id"`
	IsAssociated   bool       `json:"is_associated"`
	AssociatedUser *string    `json:"associated_user"`
	LastSeen       *time.Time `json:"last_seen"`
}

type AssociationResponse struct {
	ScannerID string    `json:"scanner_id"`
	Username  string    `json:"username"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssociationListResponse struct {
	Associations []AssociationResponse `json:"associations"`
	Count        int                   `json:"count"`
}

func ToAssociationResponse(a *domainScanner.Association) *AssociationResponse {
	if a == nil {
		return nil
	}
	return &AssociationResponse{
		ScannerID: a.ScannerID,
		Username:  a.Username,
		UpdatedAt: a.UpdatedAt,
	}
}
