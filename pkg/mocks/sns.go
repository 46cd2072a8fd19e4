package mocks

import (
	"github.com/stretchr/testify/mock"
)

// SNSClientMock is a mock for SNS publishing
type SNSClientMock struct {
	mock.Mock
}

// Publish mocks publishing a message to a topic and feed
func (m *SNSClientMock) Publish(message string, topicArn string, feed string) error {
	args := m.Called(message, topicArn, feed)
	return args.Error(0)
}
