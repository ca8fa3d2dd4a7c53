package dto

type CreateConfessionDTO struct {
	Text string `json:"text"`
}

// ConfessionResponse is a confession as the API returns it, with createdAt
// already rendered in the display time zone.
type ConfessionResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Text         string  `json:"text"`
	CreatedAt    string  `json:"createdAt"`
	IP           *string `json:"ip"`
	UserAgent    *string `json:"userAgent"`
	ForwardedFor *string `json:"forwardedFor"`
}

type ConfessionPageResponse struct {
	Confessions []ConfessionResponse `json:"confessions"`
	Total       int64                `json:"total"`
	TotalPages  int64                `json:"totalPages"`
	Page        int                  `json:"page"`
	PerPage     int                  `json:"perPage"`
}
