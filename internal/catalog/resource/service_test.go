// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/pkg/pagination"
)

// The sortable-set screen runs before any statement is built, so these
// cases never need a database behind the store.
func TestServiceListRejectsUnknownSortColumn(t *testing.T) {
	svc := NewService(NewStore[testEntity](nil, testDesc, testBind),
		func(*testEntity) error { return nil })

	_, err := svc.List(context.Background(), pagination.Params{Limit: 10}, "[form_factor:desc]")

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "form_factor")
}

func TestServiceCreateStopsOnValidationFailure(t *testing.T) {
	wantErr := apperr.ValidationError("Validation failed", map[string]string{
		"platform_name": "platform_name is required",
	})
	svc := NewService(NewStore[testEntity](nil, testDesc, testBind),
		func(*testEntity) error { return wantErr })

	err := svc.Create(context.Background(), &testEntity{})

	// The store is nil; reaching it would panic. Validation must gate writes.
	require.Same(t, wantErr, apperr.As(err))
}

func TestServiceUpdateOverwritesBodyKeyWithPathID(t *testing.T) {
	var seen int
	svc := NewService(NewStore[testEntity](nil, testDesc, testBind),
		func(e *testEntity) error {
			seen = e.ID
			return assert.AnError // stop before the nil store is touched
		})

	entity := &testEntity{ID: 99, Name: "Switch"}
	err := svc.Update(context.Background(), 3, entity)

	require.Error(t, err)
	assert.Equal(t, 3, seen)
	assert.Equal(t, 3, entity.ID)
}
