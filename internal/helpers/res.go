package helpers

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// CodedErrorResponse carries a stable machine-readable code alongside the
// human message.
func CodedErrorResponse(code, err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
		Code:    code,
	}
}
