package dto

// ListResponse is the standard paginated collection body.
type ListResponse struct {
	Items       interface{} `json:"items"`
	TotalCount  int64       `json:"totalCount"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}

// MessageResponse is the standard body for operations that return no
// record (logout, delete).
type MessageResponse struct {
	Message string `json:"message" example:"Deleted"`
}

// MarkOverdueResponse reports how many invoices were flipped to overdue.
type MarkOverdueResponse struct {
	Updated int64 `json:"updated" example:"3"`
}
