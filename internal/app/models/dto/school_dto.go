package dto

// CreateSchoolRequest creates a tenant (superadmin only).
type CreateSchoolRequest struct {
	Name           string  `json:"name" binding:"required"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	AllowDeletion  *bool   `json:"allowDeletion"`
	EnablePayments *bool   `json:"enablePayments"`
}

// UpdateSchoolRequest partially updates a tenant.
type UpdateSchoolRequest struct {
	Name           *string `json:"name"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email" binding:"omitempty,email"`
	AllowDeletion  *bool   `json:"allowDeletion"`
	EnablePayments *bool   `json:"enablePayments"`
}
