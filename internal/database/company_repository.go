package database

import (
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// CompanyFilter описывает выборку компаний категории. OpenAt включает
// фильтр "открыто сейчас", RequireLocation отбрасывает компании без
// координат (нужен для фильтра "рядом", сортировку по расстоянию
// делает вызывающий). OrderBy/Desc задают обычную сортировку.
type CompanyFilter struct {
	CategoryID      int64
	OpenAt          *time.Time
	RequireLocation bool
	OrderBy         string
	Desc            bool
}

// CompanyRepository отвечает за справочные данные: категории, компании,
// график работы, услуги и оценки.
type CompanyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCompanyRepository(db *sqlx.DB, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CompanyRepository) Categories() ([]models.Category, error) {
	query, args, err := builder.
		Select("id", "name").
		From("categories").
		Where(sq.Eq{"hidden": false}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := r.db.Select(&categories, query, args...); err != nil {
		r.logger.Error("Ошибка при получении категорий", zap.Error(err))
		return nil, err
	}
	return categories, nil
}

// CompaniesByCategory собирает запрос списка компаний по фильтрам.
func (r *CompanyRepository) CompaniesByCategory(f CompanyFilter) ([]models.Company, error) {
	q := builder.
		Select("c.id", "c.category_id", "c.name", "c.longitude", "c.latitude", "AVG(g.mark) AS avg_mark").
		From("companies c").
		LeftJoin("grades g ON g.company_id = c.id").
		Where(sq.Eq{"c.category_id": f.CategoryID}).
		GroupBy("c.id")

	if f.OpenAt != nil {
		// 0 - понедельник, как в графике работы
		weekDay := (int(f.OpenAt.Weekday()) + 6) % 7
		at := f.OpenAt.Format("15:04:05")
		q = q.Where(`EXISTS (
            SELECT 1 FROM time_works t
            WHERE t.company_id = c.id
              AND t.is_lunch = false
              AND t.week_day = ?
              AND t.start_time <= ?::time
              AND t.end_time >= ?::time
        )`, weekDay, at, at)
	}

	if f.RequireLocation {
		q = q.Where("c.longitude IS NOT NULL AND c.latitude IS NOT NULL")
	}

	switch f.OrderBy {
	case models.SortByMark:
		if f.Desc {
			q = q.OrderBy("avg_mark DESC NULLS LAST")
		} else {
			q = q.OrderBy("avg_mark ASC NULLS LAST")
		}
	default:
		if f.Desc {
			q = q.OrderBy("c.name DESC")
		} else {
			q = q.OrderBy("c.name ASC")
		}
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var companies []models.Company
	if err := r.db.Select(&companies, query, args...); err != nil {
		r.logger.Error("Ошибка при получении компаний категории",
			zap.Error(err),
			zap.Int64("category_id", f.CategoryID),
		)
		return nil, err
	}
	return companies, nil
}

func (r *CompanyRepository) GetByID(id int64) (models.Company, error) {
	query := `
        SELECT
            c.id,
            c.category_id,
            c.owner_id,
            c.name,
            COALESCE(c.description, '') AS description,
            COALESCE(c.address, '') AS address,
            COALESCE(c.contact, '') AS contact,
            COALESCE(c.email, '') AS email,
            COALESCE(c.site, '') AS site,
            c.longitude,
            c.latitude,
            (SELECT AVG(mark) FROM grades WHERE company_id = c.id) AS avg_mark
        FROM companies c
        WHERE c.id = $1
    `

	var company models.Company
	err := r.db.Get(&company, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, nil // Компания не найдена
		}
		r.logger.Error("Ошибка при получении компании",
			zap.Error(err),
			zap.Int64("company_id", id),
		)
		return models.Company{}, err
	}

	return company, nil
}

// WorkSchedule возвращает график работы без обеденных перерывов.
func (r *CompanyRepository) WorkSchedule(companyID int64) ([]models.TimeWork, error) {
	query := `
        SELECT
            id,
            company_id,
            week_day,
            to_char(start_time, 'HH24:MI') AS start_time,
            to_char(end_time, 'HH24:MI') AS end_time,
            is_lunch
        FROM time_works
        WHERE company_id = $1 AND is_lunch = false
        ORDER BY week_day
    `

	var schedule []models.TimeWork
	if err := r.db.Select(&schedule, query, companyID); err != nil {
		r.logger.Error("Ошибка при получении графика работы",
			zap.Error(err),
			zap.Int64("company_id", companyID),
		)
		return nil, err
	}
	return schedule, nil
}

// HasGrade - пользователь уже оценивал компанию. Оценка ставится один
// раз, повторная попытка отклоняется на уровне экрана.
func (r *CompanyRepository) HasGrade(reviewerID, companyID int64) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		`SELECT EXISTS (SELECT 1 FROM grades WHERE reviewer_id = $1 AND company_id = $2)`,
		reviewerID, companyID,
	)
	if err != nil {
		r.logger.Error("Ошибка при проверке оценки компании",
			zap.Error(err),
			zap.Int64("reviewer_id", reviewerID),
			zap.Int64("company_id", companyID),
		)
		return false, err
	}
	return exists, nil
}

func (r *CompanyRepository) CreateGrade(reviewerID, companyID int64, mark int) error {
	grade := models.Grade{ReviewerID: reviewerID, CompanyID: companyID, Mark: mark}
	_, err := r.db.NamedExec(
		`INSERT INTO grades (reviewer_id, company_id, mark) VALUES (:reviewer_id, :company_id, :mark)`,
		grade,
	)
	if err != nil {
		r.logger.Error("Ошибка при сохранении оценки компании",
			zap.Error(err),
			zap.Int64("reviewer_id", reviewerID),
			zap.Int64("company_id", companyID),
		)
		return err
	}
	return nil
}

// ServicesByCompany возвращает услуги компании без тех услуг
// бронирования, по которым уже висит незавершённый заказ.
func (r *CompanyRepository) ServicesByCompany(companyID int64) ([]models.Service, error) {
	query := `
        SELECT s.id, s.company_id, s.type, s.name
        FROM services s
        WHERE s.company_id = $1
          AND NOT (s.type = 1 AND EXISTS (
              SELECT 1 FROM orders o
              WHERE o.service_id = s.id AND o.status NOT IN (2, 3)
          ))
        ORDER BY s.name
    `

	var services []models.Service
	if err := r.db.Select(&services, query, companyID); err != nil {
		r.logger.Error("Ошибка при получении услуг компании",
			zap.Error(err),
			zap.Int64("company_id", companyID),
		)
		return nil, err
	}
	return services, nil
}

func (r *CompanyRepository) ServiceByID(id int64) (models.Service, error) {
	query := `
        SELECT
            s.id,
            s.company_id,
            s.type,
            s.name,
            COALESCE(s.description, '') AS description,
            c.name AS company_name,
            c.owner_id
        FROM services s
        JOIN companies c ON c.id = s.company_id
        WHERE s.id = $1
    `

	var service models.Service
	err := r.db.Get(&service, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Service{}, nil // Услуга не найдена
		}
		r.logger.Error("Ошибка при получении услуги",
			zap.Error(err),
			zap.Int64("service_id", id),
		)
		return models.Service{}, err
	}

	return service, nil
}
