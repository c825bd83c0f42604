// Copyright (c) 2026 Gamedex. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how limit/offset windows are requested via query parameters
// and how link-based navigation metadata is delivered in the response envelope.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultOffset is the index of the first item returned.
	DefaultOffset = 0
)

// Params holds the parsed limit and offset from a request's query string.
type Params struct {
	Limit  int
	Offset int
}

// Link is a single navigation entry in a paginated response.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// FromRequest parses "limit" and "offset" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultLimit], [MaxLimit], or [DefaultOffset].
func FromRequest(r *http.Request) Params {
	limit := parseIntParam(r, "limit", DefaultLimit)
	offset := parseIntParam(r, "offset", DefaultOffset)

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	if offset < 0 {
		offset = DefaultOffset
	}

	return Params{Limit: limit, Offset: offset}
}

// Links builds the navigation link set for a paginated collection.
//
// It is a pure function of its inputs. The set always contains "self",
// "first" and "last"; "prev" is present only when offset-limit >= 0, and
// "next" only when offset+limit < total.
//
// # Edge case
//
// A total of zero still yields "first" and "last" at offset 0: the
// collection is treated as a single empty page, never a divide-by-zero.
func Links(baseURL string, limit, offset, total int) []Link {
	lastOffset := limit * (totalPages(total, limit) - 1)

	links := []Link{
		{Rel: "self", Href: pageHref(baseURL, limit, offset)},
		{Rel: "first", Href: pageHref(baseURL, limit, 0)},
	}

	if offset-limit >= 0 {
		links = append(links, Link{Rel: "prev", Href: pageHref(baseURL, limit, offset-limit)})
	}

	if offset+limit < total {
		links = append(links, Link{Rel: "next", Href: pageHref(baseURL, limit, offset+limit)})
	}

	links = append(links, Link{Rel: "last", Href: pageHref(baseURL, limit, lastOffset)})

	return links
}

// BaseURL reconstructs the canonical request URL (scheme, host, port, path)
// with the query string stripped, for use as the href base in [Links].
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	return scheme + "://" + r.Host + r.URL.Path
}

// totalPages returns the page count for total rows at the given limit,
// clamped to at least one page.
func totalPages(total, limit int) int {
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pages
}

// pageHref renders a single navigation href.
func pageHref(baseURL string, limit, offset int) string {
	return fmt.Sprintf("%s?limit=%d&offset=%d", baseURL, limit, offset)
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
