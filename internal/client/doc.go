// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires the local storage, the sync services, the alert listener and the
// scheduled sync job into a single process lifecycle.
package client
