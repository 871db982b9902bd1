package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes of the JSON API.
const (
	CodeNotFound = "not_found"
	CodeInternal = "internal"
)

// APIError is the body of a failed API call.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps an APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Not found</title></head>
<body><h1>Not found</h1><p>No lesson lives at this address.</p></body></html>
`

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

func respondHTML(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func respondNotFoundPage(c *gin.Context) {
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
}
