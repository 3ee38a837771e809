package dto

import (
	"time"

	"github.com/SscSPs/project_books/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name         string          `json:"name" binding:"required"`
	NameAlt      string          `json:"nameAlt"`
	Phase        domain.Phase    `json:"phase" binding:"omitempty,phase"` // defaults to building
	OwnerCapital decimal.Decimal `json:"ownerCapital" binding:"decimal_gte0"`
	PIN          *string         `json:"pin" binding:"omitempty,numeric,min=4,max=12"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProjectRequest struct {
	Name         *string          `json:"name"`
	NameAlt      *string          `json:"nameAlt"`
	Phase        *domain.Phase    `json:"phase" binding:"omitempty,phase"`
	OwnerCapital *decimal.Decimal `json:"ownerCapital"`
}

// SetPINRequest replaces the project PIN. An empty PIN removes it.
type SetPINRequest struct {
	PIN string `json:"pin" binding:"omitempty,numeric,min=4,max=12"`
}

// UnlockRequest carries the PIN used to open a project session.
type UnlockRequest struct {
	PIN string `json:"pin"`
}

// UnlockResponse is the project-scoped session token.
type UnlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
