package dto

// PageMeta carries pagination metadata for list responses.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPageMeta computes the page count for a list response.
func NewPageMeta(total, page, limit int) PageMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageMeta{Total: total, Page: page, Limit: limit, Pages: pages}
}

// MessageResponse is the generic acknowledgement body for delete operations.
type MessageResponse struct {
	Message string `json:"message"`
}
