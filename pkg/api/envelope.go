package api

// Response представляет стандартный конверт успешного ответа сервера
type Response[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Pagination содержит метаданные постраничного списка
type Pagination struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalRecords    int  `json:"totalRecords"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// ListResponse представляет конверт ответа со списком и пагинацией
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message"`
	Timestamp  string     `json:"timestamp"`
}

// ErrorResponse представляет ответ сервера с ошибкой (problem details)
type ErrorResponse struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Detail  string              `json:"detail,omitempty"`
	TraceID string              `json:"traceId,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
