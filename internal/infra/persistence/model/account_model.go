package model

import (
	"time"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via
// gen_random_uuid(). The unique index on email is the correctness mechanism
// for concurrent registrations; the application-level pre-check is only an
// optimization.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Address      string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(50)"`
	City         string    `gorm:"type:varchar(100)"`
	State        string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *AccountModel) ToDomain() *entity.Account {
	return &entity.Account{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      m.Address,
		Phone:        m.Phone,
		City:         m.City,
		State:        m.State,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain maps a pure domain entity to the persistence model.
func FromDomain(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:           account.ID,
		Email:        account.Email,
		Name:         account.Name,
		PasswordHash: account.PasswordHash,
		Address:      account.Address,
		Phone:        account.Phone,
		City:         account.City,
		State:        account.State,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
}
