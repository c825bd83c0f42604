// Copyright (c) 2026 Gamedex. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (success or error) follows one of three fixed envelope
// shapes — list, single, or mutation — so API consumers can parse data
// robustly without per-endpoint special cases.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/ctxutil"
	"github.com/gamedex/gamedex/pkg/pagination"
	"github.com/gamedex/gamedex/pkg/sortkey"
)

// ListEnvelope is the JSON envelope for paginated list responses.
type ListEnvelope struct {
	TotalCount int               `json:"totalCount"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
	Links      []pagination.Link `json:"links"`
	Sort       sortkey.Keys      `json:"sort"`
	Data       interface{}       `json:"data"`
}

// DataEnvelope is the JSON envelope for single-resource, relation, and
// search responses.
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// StatusEnvelope is the JSON envelope for mutation outcomes.
type StatusEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorEnvelope is the JSON envelope for error responses. Errors carries the
// field->reason mapping for validation failures and is omitted otherwise.
type ErrorEnvelope struct {
	Status string            `json:"status"`
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the standard data envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, DataEnvelope{Data: data})
}

// List writes a 200 OK response with the paginated list envelope.
func List(writer http.ResponseWriter, data interface{}, total int, page pagination.Params, links []pagination.Link, sort sortkey.Keys) {
	JSON(writer, http.StatusOK, ListEnvelope{
		TotalCount: total,
		Limit:      page.Limit,
		Offset:     page.Offset,
		Links:      links,
		Sort:       sort,
		Data:       data,
	})
}

// Created writes a 201 Created mutation envelope.
func Created(writer http.ResponseWriter, status string, data interface{}) {
	JSON(writer, http.StatusCreated, StatusEnvelope{Status: status, Data: data})
}

// Updated writes a 200 OK mutation envelope.
func Updated(writer http.ResponseWriter, status string, data interface{}) {
	JSON(writer, http.StatusOK, StatusEnvelope{Status: status, Data: data})
}

// Deleted writes a 200 OK mutation envelope with no data member.
func Deleted(writer http.ResponseWriter, status string) {
	JSON(writer, http.StatusOK, StatusEnvelope{Status: status})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Status: appError.Message,
		Code:   appError.Code,
		Errors: appError.Fields,
	})
}
