// Package controller holds the helpers shared by the admin and user HTTP
// controllers.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/rs/zerolog/log"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err as an ErrorResponse with the status of its kind.
func RespondError(ctx *gin.Context, err error, message string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg(message)
	} else {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Int("status", status).Msg(message)
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}

// BindJSON decodes the body into req and answers 400 when it cannot.
func BindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return false
	}
	return true
}

// UintParam parses the named path parameter, answering 400 when it is not a
// positive integer.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || v == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return uint(v), true
}

// UintQuery parses an optional query parameter; absent yields 0.
func UintQuery(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format in query", name)})
		return 0, false
	}
	return uint(v), true
}

// Created answers 201 with a Location header.
func Created(ctx *gin.Context, location string, body any) {
	ctx.Header("Location", location)
	ctx.JSON(http.StatusCreated, body)
}
