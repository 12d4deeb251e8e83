package apperrors

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - единый конверт ошибки, который видит клиент.
// Stack заполняется только вне продакшена.
type ErrorResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Errors  []interface{} `json:"errors"`
	Stack   string        `json:"stack,omitempty"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// debug управляется из app при старте (по Server.Env)
var defaultHandler = &GinErrorHandler{Debug: true}

// SetDebug переключает режим отладки глобального обработчика
func SetDebug(debug bool) {
	defaultHandler.Debug = debug
}

// HandleGinError - основная логика обработки ошибок для Gin.
// Любая не-AppError превращается в InternalError; в продакшене детали скрываются.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		log.Printf("Server error: %v", appErr)
		if !h.Debug {
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	resp := ErrorResponse{
		Success: false,
		Message: appErr.Message,
		Errors:  []interface{}{},
	}
	if appErr.Details != nil {
		resp.Errors = append(resp.Errors, appErr.Details)
	}
	if h.Debug && appErr.Err != nil {
		resp.Stack = fmt.Sprintf("%+v", appErr.Err)
	}

	c.JSON(appErr.HTTPCode, resp)
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
