package database

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// TestGradeNamedBinding - именованные параметры вставки оценки
// разворачиваются по db-тегам модели в правильном порядке.
func TestGradeNamedBinding(t *testing.T) {
	query, args, err := sqlx.Named(
		`INSERT INTO grades (reviewer_id, company_id, mark) VALUES (:reviewer_id, :company_id, :mark)`,
		models.Grade{ReviewerID: 7, CompanyID: 3, Mark: 5},
	)
	require.NoError(t, err)
	assert.Contains(t, query, "?")
	assert.Equal(t, []interface{}{int64(7), int64(3), 5}, args)
}
