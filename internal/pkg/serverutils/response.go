package serverutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(message string, data interface{}) *BaseResponse {
	return &BaseResponse{
		Success: true,
		Code:    fiber.StatusOK,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *BaseResponse {
	return &BaseResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ServerTime is the timestamp stamped on every action response.
func ServerTime() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ActionResponse returns the flat action payload with server_time added.
func ActionResponse(payload fiber.Map) fiber.Map {
	out := make(fiber.Map, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["server_time"] = ServerTime()
	return out
}

func ActionError(message string) fiber.Map {
	return ActionResponse(fiber.Map{"error": message})
}
