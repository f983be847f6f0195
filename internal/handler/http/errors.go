// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pim-sync/internal/alert"
	"github.com/MKhiriev/go-pim-sync/models"
)

// ErrEmptyAlert is returned for an alert push without a body.
var ErrEmptyAlert = errors.New("empty alert body")

var errorStatusMap = map[error]int{
	ErrEmptyAlert:             http.StatusBadRequest,
	alert.ErrMalformedAlert:   http.StatusBadRequest,
	models.ErrUnknownSyncMode: http.StatusBadRequest,
}

func statusFromError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
