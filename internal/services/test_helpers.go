package services

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"

	"github.com/BradenHooton/barangay/internal/database"
	"github.com/BradenHooton/barangay/internal/models"
	pkgauth "github.com/BradenHooton/barangay/pkg/auth"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	CreateFunc          func(ctx context.Context, user *models.User) (*models.User, error)
	CreateIfAbsentFunc  func(ctx context.Context, user *models.User) (bool, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*models.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
	GetAdminByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	UpdateStatusFunc    func(ctx context.Context, id int64, status string) (int64, error)
	ListByStatusFunc    func(ctx context.Context, status string) ([]*models.User, error)
	ListFunc            func(ctx context.Context) ([]*models.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, user)
	}
	return true, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetAdminByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetAdminByEmailFunc != nil {
		return m.GetAdminByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return 0, nil
}

func (m *MockUserRepository) ListByStatus(ctx context.Context, status string) ([]*models.User, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.User{}, nil
}

// MockReportRepository implements ReportRepository for testing
type MockReportRepository struct {
	CreateFunc  func(ctx context.Context, report *models.Report) (*models.Report, error)
	GetByIDFunc func(ctx context.Context, id int64) (*models.Report, error)
	ListFunc    func(ctx context.Context) ([]*models.Report, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, report)
	}
	report.ID = 1
	report.CreatedAt = time.Now()
	return report, nil
}

func (m *MockReportRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockReportRepository) List(ctx context.Context) ([]*models.Report, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*models.Report{}, nil
}

func (m *MockReportRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockSchema implements Schema for testing
type MockSchema struct {
	PingFunc          func(ctx context.Context) (int, error)
	TableExistsFunc   func(ctx context.Context, table string) (bool, error)
	DescribeTableFunc func(ctx context.Context, table string) ([]database.ColumnInfo, error)
	StatusCountsFunc  func(ctx context.Context) ([]database.StatusCount, error)
	MigrateFunc       func(ctx context.Context) (int, error)
	ResetFunc         func(ctx context.Context) error
}

func (m *MockSchema) Ping(ctx context.Context) (int, error) {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return 1, nil
}

func (m *MockSchema) TableExists(ctx context.Context, table string) (bool, error) {
	if m.TableExistsFunc != nil {
		return m.TableExistsFunc(ctx, table)
	}
	return true, nil
}

func (m *MockSchema) DescribeTable(ctx context.Context, table string) ([]database.ColumnInfo, error) {
	if m.DescribeTableFunc != nil {
		return m.DescribeTableFunc(ctx, table)
	}
	return []database.ColumnInfo{}, nil
}

func (m *MockSchema) StatusCounts(ctx context.Context) ([]database.StatusCount, error) {
	if m.StatusCountsFunc != nil {
		return m.StatusCountsFunc(ctx)
	}
	return []database.StatusCount{}, nil
}

func (m *MockSchema) Migrate(ctx context.Context) (int, error) {
	if m.MigrateFunc != nil {
		return m.MigrateFunc(ctx)
	}
	return 0, nil
}

func (m *MockSchema) Reset(ctx context.Context) error {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx)
	}
	return nil
}

// MockNotifier records decision notifications
type MockNotifier struct {
	NotifyDecisionFunc func(ctx context.Context, user *models.User) error
	Calls              []*models.User
}

func (m *MockNotifier) NotifyDecision(ctx context.Context, user *models.User) error {
	m.Calls = append(m.Calls, user)
	if m.NotifyDecisionFunc != nil {
		return m.NotifyDecisionFunc(ctx, user)
	}
	return nil
}

// MockSESClient implements SESAPI for testing
type MockSESClient struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	Inputs        []*ses.SendEmailInput
}

func (m *MockSESClient) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.Inputs = append(m.Inputs, params)
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(ctx, params, optFns...)
	}
	id := "msg-1"
	return &ses.SendEmailOutput{MessageId: &id}, nil
}

// NewTestUser builds a citizen with the given id, email and status
func NewTestUser(id int64, email, name, status string) *models.User {
	return &models.User{
		ID:        id,
		FirstName: name,
		Email:     email,
		Status:    status,
		Role:      models.RoleCitizen,
		CreatedAt: time.Now(),
	}
}

// NewTestAdmin builds an approved admin
func NewTestAdmin(id int64, email string) *models.User {
	user := NewTestUser(id, email, "Admin User", models.StatusApproved)
	user.Role = models.RoleAdmin
	return user
}

// fakeHasher is a cheap PasswordHasher that prefixes instead of hashing.
type fakeHasher struct {
	hashErr error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h fakeHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return pkgauth.ErrPasswordMismatch
	}
	return nil
}
