package dto

// Response is the uniform success envelope for single-object endpoints.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// NewResponse wraps data in the success envelope
func NewResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// ListMeta carries pagination metadata alongside list payloads.
type ListMeta struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// ListResponse is the success envelope for paginated list endpoints.
type ListResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Meta    ListMeta `json:"meta"`
}

// NewListResponse wraps a page of data with its pagination metadata
func NewListResponse(data any, total int64, limit, offset int) ListResponse {
	return ListResponse{
		Success: true,
		Data:    data,
		Meta: ListMeta{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	}
}
