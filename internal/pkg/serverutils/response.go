// FILE: internal/pkg/serverutils/response.go
package serverutils

// ApiResponse is the envelope every endpoint returns, success or failure.
type ApiResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  "error",
		Message: message,
	}
}
