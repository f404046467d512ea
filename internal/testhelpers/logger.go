// Package testhelpers provides shared fixtures for package tests.
package testhelpers

import (
	"github.com/datapoolml/outreach-crm/internal/logger"
)

// NewTestLogger creates a logger suitable for testing (discards output).
func NewTestLogger() logger.Logger {
	return logger.NewNopLogger()
}
