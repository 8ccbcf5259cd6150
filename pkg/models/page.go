package models

// Page is the single paginated-response envelope every list endpoint uses.
// Earlier client code sniffed between a bare array, {content: [...]} and
// {data: [...]}; the backend contract is now pinned to this shape only.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}
