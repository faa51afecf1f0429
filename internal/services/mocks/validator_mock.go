// filepath: internal/services/mocks/validator_mock.go
package mocks

import (
	"docvault/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockSecurityValidator mocks the external security validator
type MockSecurityValidator struct {
	mock.Mock
}

func (m *MockSecurityValidator) Validate(path, originalName, declaredMimeType string, size int64) models.SecurityReport {
	args := m.Called(path, originalName, declaredMimeType, size)
	return args.Get(0).(models.SecurityReport)
}
