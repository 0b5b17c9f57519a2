package respond

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Response unified API response structure
type Response struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
	CostMs  int64       `json:"cost_ms,omitempty" example:"12"`
}

const timingKey = "request_start_time"

// TimingMiddleware record request start time for response timing
func TimingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(timingKey, time.Now())
		c.Next()
	}
}

func costMs(c *gin.Context) int64 {
	if v, ok := c.Get(timingKey); ok {
		if start, ok := v.(time.Time); ok {
			return time.Since(start).Milliseconds()
		}
	}
	return 0
}

// Success respond with 200 and data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
		CostMs:  costMs(c),
	})
}

// Created respond with 201 and data
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
		CostMs:  costMs(c),
	})
}

// InvalidParam respond with 400
func InvalidParam(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// NotFound respond with 404
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code:    http.StatusNotFound,
		Message: message,
	})
}

// Conflict respond with 409
func Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, Response{
		Code:    http.StatusConflict,
		Message: message,
	})
}

// ServerError respond with 500
func ServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
