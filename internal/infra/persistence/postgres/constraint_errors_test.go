package postgres

import (
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "gorm translated duplicate",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "wrapped gorm duplicate",
			err:  errors.Wrap(gorm.ErrDuplicatedKey, "create account"),
			want: true,
		},
		{
			name: "driver unique violation",
			err: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "idx_accounts_email",
			},
			want: true,
		},
		{
			name: "wrapped driver unique violation",
			err:  errors.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "create account"),
			want: true,
		},
		{
			name: "other driver error",
			err:  &pgconn.PgError{Code: pgerrcode.NotNullViolation},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection reset"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueConstraintViolation(tt.err))
		})
	}
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgerrcode.NotNullViolation}))
	assert.True(t, isNotNullConstraintViolation(errors.Wrap(&pgconn.PgError{Code: pgerrcode.NotNullViolation}, "create account")))
	assert.False(t, isNotNullConstraintViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isNotNullConstraintViolation(errors.New("connection reset")))
	assert.False(t, isNotNullConstraintViolation(nil))
}
