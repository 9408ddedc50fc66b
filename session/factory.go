// Corelog - Application Logging and Correlation Toolkit
// Copyright 2026 The Corelog Authors
// SPDX-License-Identifier: MIT
// https://github.com/sedgwick-docs/corelog

package session

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store backends selectable via configuration.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// StoreConfig selects and configures a session store backend.
type StoreConfig struct {
	// Backend is "memory" or "badger".
	Backend string

	// Path is the BadgerDB directory. Required for the badger backend.
	Path string
}

// NewStore creates the configured session store. The returned close
// function releases backend resources and must run at shutdown; it is
// always non-nil.
func NewStore(cfg StoreConfig) (Store, func() error, error) {
	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), func() error { return nil }, nil

	case BackendBadger:
		if cfg.Path == "" {
			return nil, nil, fmt.Errorf("badger session store requires a path")
		}
		opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger session store at %s: %w", cfg.Path, err)
		}
		return NewBadgerStore(db), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store backend %q", cfg.Backend)
	}
}
