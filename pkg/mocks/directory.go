package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/medisure/medisurechat/pkg/chat"
)

// UserDirectoryMock is a mock for the user directory
type UserDirectoryMock struct {
	mock.Mock
}

// GetUserProfile mocks a profile lookup
func (m *UserDirectoryMock) GetUserProfile(id string) (*chat.UserProfile, error) {
	args := m.Called(id)
	profile, _ := args.Get(0).(*chat.UserProfile)
	return profile, args.Error(1)
}

// ListByRole mocks a role listing
func (m *UserDirectoryMock) ListByRole(role chat.Role) ([]chat.UserProfile, error) {
	args := m.Called(role)
	profiles, _ := args.Get(0).([]chat.UserProfile)
	return profiles, args.Error(1)
}
