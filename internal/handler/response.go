package handler

import (
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/philipobrien-sdm/React-Local-LLM-AnythingLLM-Edition/internal/anythingllm"
)

// Response is the uniform envelope every dashboard endpoint returns.
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse returns a successful response
func SuccessResponse(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusOK, Response{
		Code:    "SUCCESS",
		Message: "operation successful",
		Data:    data,
	})
}

// CreatedResponse returns a created response
func CreatedResponse(c *app.RequestContext, data interface{}) {
	c.JSON(consts.StatusCreated, Response{
		Code:    "CREATED",
		Message: "resource created successfully",
		Data:    data,
	})
}

// ErrorResponse maps a client error onto the envelope. Backend failures are
// relayed with enough of the taxonomy preserved that the browser UI can
// choose the right remediation hint.
func ErrorResponse(c *app.RequestContext, err error) {
	var apiErr *anythingllm.APIError
	msg := err.Error()
	if errors.As(err, &apiErr) {
		msg = apiErr.UserMessage()
	}

	switch {
	case anythingllm.IsAuthentication(err):
		c.JSON(consts.StatusUnauthorized, Response{Code: "AUTHENTICATION_ERROR", Message: msg})
	case anythingllm.IsNotFound(err):
		c.JSON(consts.StatusNotFound, Response{Code: "NOT_FOUND", Message: msg})
	case anythingllm.IsTransport(err):
		c.JSON(consts.StatusBadGateway, Response{Code: "TRANSPORT_ERROR", Message: msg})
	case anythingllm.IsConfiguration(err):
		c.JSON(consts.StatusInternalServerError, Response{Code: "CONFIGURATION_ERROR", Message: msg})
	case anythingllm.IsRequest(err):
		c.JSON(consts.StatusBadGateway, Response{Code: "REQUEST_ERROR", Message: msg})
	default:
		c.JSON(consts.StatusInternalServerError, Response{Code: "INTERNAL_ERROR", Message: msg})
	}
}

// BadRequestResponse returns a 400 with the given message.
func BadRequestResponse(c *app.RequestContext, message string) {
	c.JSON(consts.StatusBadRequest, Response{Code: "INVALID_INPUT", Message: message})
}
