package dto

// SearchRequest - текстовый запрос геокодирования
type SearchRequest struct {
	Query string `json:"q" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// SearchResult - один кандидат геокодирования
type SearchResult struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// SearchResponse - ответ геокодирования
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}
