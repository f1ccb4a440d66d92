// Package repository provides testify mocks for the domain repository
// interfaces.
package repository

import (
	"context"
	"testing"
	"time"

	"lens/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

// MockCustomerProfileRepository mocks repository.CustomerProfileRepository.
type MockCustomerProfileRepository struct {
	mock.Mock
}

func NewMockCustomerProfileRepository(t *testing.T) *MockCustomerProfileRepository {
	m := &MockCustomerProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCustomerProfileRepository) FindByUserID(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.CustomerProfile)

	return profile, args.Error(1)
}

func (m *MockCustomerProfileRepository) Create(ctx context.Context, profile *entity.CustomerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCustomerProfileRepository) Update(ctx context.Context, profile *entity.CustomerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

// MockProductRepository mocks repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) FindByProductID(ctx context.Context, productID string) (*entity.Product, error) {
	args := m.Called(ctx, productID)
	product, _ := args.Get(0).(*entity.Product)

	return product, args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, query, limit)
	products, _ := args.Get(0).([]*entity.Product)

	return products, args.Error(1)
}

// MockTransactionRepository mocks repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func NewMockTransactionRepository(t *testing.T) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Transaction, error) {
	args := m.Called(ctx, transactionID)
	txn, _ := args.Get(0).(*entity.Transaction)

	return txn, args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransactionRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	txns, _ := args.Get(0).([]*entity.Transaction)

	return txns, args.Error(1)
}
