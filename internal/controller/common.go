package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"job-marketplace-api/internal/apperr"
	"job-marketplace-api/internal/entity"
	"job-marketplace-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 0
	defaultOffset = 0
)

type errorResponse struct {
	Reason string `json:"reason"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidArgument, apperr.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for a failed workflow call. The cause of
// internal errors is logged but never sent to the client.
func respondError(c echo.Context, l *logger.Logger, err error) error {
	status := statusOf(apperr.KindOf(err))
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	} else {
		l.Warn("request rejected", "method", c.Request().Method, "path", c.Path(), "status", status, "error", err)
	}

	if e := c.JSON(status, errorResponse{apperr.MessageOf(err)}); e != nil {
		return e
	}

	return nil
}

// bindAndValidate decodes the request body into input and validates it. On
// failure the 400 response is already written and ok is false.
func bindAndValidate(c echo.Context, v *validator.Validate, input interface{}) (ok bool, err error) {
	if err := c.Bind(input); err != nil {
		return false, c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"})
	}

	if err := v.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return false, c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(validationErrors)})
		}

		return false, c.JSON(http.StatusBadRequest, errorResponse{"Incorrect input value passed"})
	}

	return true, nil
}

type paginationQuery struct {
	Limit  int `query:"limit" validate:"gte=0,lte=100"`
	Offset int `query:"offset" validate:"gte=0"`
}

// pagination reads limit and offset from the query string. On failure the 400
// response is already written and ok is false.
func pagination(c echo.Context, v *validator.Validate) (pg *entity.PaginationInput, ok bool, err error) {
	query := paginationQuery{Limit: defaultLimit, Offset: defaultOffset}
	if ok, err := bindAndValidate(c, v, &query); !ok {
		return nil, false, err
	}

	return entity.NewPaginationInput(query.Limit, query.Offset), true, nil
}

func getAllErrorMessages(errs validator.ValidationErrors) string {
	var builder strings.Builder
	for _, fe := range errs {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	if fe.Tag() == "required" {
		return "this field is required"
	}

	switch fe.Kind() {
	case reflect.String:
		return getMessageForString(fe)
	case reflect.Int, reflect.Int32, reflect.Int64:
		return getMessageForInt(fe)
	case reflect.Slice:
		return getMessageForSlice(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a valid UUID"
	case "url":
		return "should be a valid URL"
	case "email":
		return "should be a valid email address"
	}

	return "incorrect value passed"
}

func getMessageForSlice(fe validator.FieldError) string {
	switch fe.Tag() {
	case "lte", "max":
		return "should contain at most " + fe.Param() + " items"
	case "dive":
		return "contains an incorrect item"
	}

	return "incorrect value passed"
}
