package sessiondb

import (
	"github.com/stretchr/testify/mock"
	"github.com/talentops/ninebox/internal/contract"
	"github.com/talentops/ninebox/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSessionStore implements the StoreManager interface.
func (m *MockStoreManager) GetSessionStore() contract.SessionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SessionStore)
	return store
}

// MockSessionStore is a mock implementation of SessionStore for testing.
type MockSessionStore struct {
	mock.Mock
}

var _ contract.SessionStore = &MockSessionStore{} // Compile-time check

// Save implements the SessionStore interface.
func (m *MockSessionStore) Save(record *schema.SessionRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Load implements the SessionStore interface.
func (m *MockSessionStore) Load(userID string) (*schema.SessionRecord, error) {
	args := m.Called(userID)
	record, _ := args.Get(0).(*schema.SessionRecord)
	return record, args.Error(1)
}

// Delete implements the SessionStore interface.
func (m *MockSessionStore) Delete(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// Status implements the SessionStore interface.
func (m *MockSessionStore) Status() (*schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(*schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the SessionStore interface.
func (m *MockSessionStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
