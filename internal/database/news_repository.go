package database

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// NewsRepository отвечает за новости компаний и их подписчиков.
type NewsRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewNewsRepository(db *sqlx.DB, logger *zap.Logger) *NewsRepository {
	return &NewsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *NewsRepository) GetByID(id int64) (models.News, error) {
	query := `
        SELECT
            n.id,
            n.company_id,
            n.title,
            n.description,
            n.notify_users,
            n.notified,
            n.date_from,
            n.date_to,
            n.created,
            c.name AS company_name
        FROM news n
        JOIN companies c ON c.id = n.company_id
        WHERE n.id = $1
    `

	var news models.News
	err := r.db.Get(&news, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.News{}, nil // Новость не найдена
		}
		r.logger.Error("Ошибка при получении новости",
			zap.Error(err),
			zap.Int64("news_id", id),
		)
		return models.News{}, err
	}

	return news, nil
}

// PendingNotifications - новости с включённой рассылкой, которые ещё
// не рассылались и чьё окно действия не истекло.
func (r *NewsRepository) PendingNotifications() ([]models.News, error) {
	query := `
        SELECT
            n.id,
            n.company_id,
            n.title,
            n.description,
            n.notify_users,
            n.notified,
            n.date_from,
            n.date_to,
            n.created,
            c.name AS company_name
        FROM news n
        JOIN companies c ON c.id = n.company_id
        WHERE n.notify_users = true
          AND n.notified = false
          AND (n.date_to IS NULL OR n.date_to >= now()::date)
        ORDER BY n.created
    `

	var news []models.News
	if err := r.db.Select(&news, query); err != nil {
		r.logger.Error("Ошибка при получении новостей для рассылки", zap.Error(err))
		return nil, err
	}
	return news, nil
}

// MarkNotified помечает новость разосланной, чтобы рестарт бота не
// разослал её повторно.
func (r *NewsRepository) MarkNotified(id int64) error {
	_, err := r.db.Exec(`UPDATE news SET notified = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Ошибка при отметке новости разосланной",
			zap.Error(err),
			zap.Int64("news_id", id),
		)
	}
	return err
}

// Watchers - пользователи, следящие за компанией. Им уходит
// уведомление о новости.
func (r *NewsRepository) Watchers(companyID int64) ([]models.User, error) {
	query := `
        SELECT u.id, u.full_name, u.username, u.lang, u.phone, u.blocked, u.settings
        FROM watch_company_users w
        JOIN users u ON u.id = w.user_id
        WHERE w.company_id = $1 AND u.blocked = false
    `

	var users []models.User
	if err := r.db.Select(&users, query, companyID); err != nil {
		r.logger.Error("Ошибка при получении подписчиков компании",
			zap.Error(err),
			zap.Int64("company_id", companyID),
		)
		return nil, err
	}
	return users, nil
}
