package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// UserRepository представляет репозиторий для работы с пользователями
type UserRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *sqlx.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreate создает пользователя при первом обращении и обновляет
// имя/логин при последующих. Настройки при обновлении не трогаются.
func (r *UserRepository) GetOrCreate(id int64, fullName, username, lang string) (models.User, error) {
	query := `
        INSERT INTO users (id, full_name, username, lang, phone, settings)
        VALUES ($1, $2, $3, $4, '', '{}')
        ON CONFLICT (id) DO UPDATE SET
            full_name = EXCLUDED.full_name,
            username = EXCLUDED.username
        RETURNING id, full_name, username, lang, phone, blocked, settings
    `

	var user models.User
	err := r.db.Get(&user, query, id, fullName, username, lang)
	if err != nil {
		r.logger.Error("Ошибка при создании/обновлении пользователя",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return models.User{}, err
	}

	return user, nil
}

func (r *UserRepository) GetByID(id int64) (models.User, error) {
	var user models.User
	query := `SELECT id, full_name, username, lang, phone, blocked, settings FROM users WHERE id = $1`

	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, nil // Пользователь не найден
		}
		r.logger.Error("Ошибка при получении пользователя",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return models.User{}, err
	}

	return user, nil
}

// SaveSettings сохраняет весь блок настроек пользователя. Каждая
// мутация настроек пишется сразу, никакого кеша между событиями нет.
func (r *UserRepository) SaveSettings(id int64, settings models.UserSettings) error {
	_, err := r.db.Exec(`UPDATE users SET settings = $1 WHERE id = $2`, settings, id)
	if err != nil {
		r.logger.Error("Ошибка при сохранении настроек пользователя",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return err
	}
	return nil
}

func (r *UserRepository) SetPhone(id int64, phone string) error {
	_, err := r.db.Exec(`UPDATE users SET phone = $1 WHERE id = $2`, phone, id)
	if err != nil {
		r.logger.Error("Ошибка при сохранении телефона пользователя",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return err
	}
	return nil
}

func (r *UserRepository) SetLanguage(id int64, lang string) error {
	_, err := r.db.Exec(`UPDATE users SET lang = $1 WHERE id = $2`, lang, id)
	if err != nil {
		r.logger.Error("Ошибка при сохранении языка пользователя",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return err
	}
	return nil
}

// SetLocation записывает свежую геопозицию пользователя вместе с
// отметкой времени - по ней проверяется свежесть для фильтра "рядом".
func (r *UserRepository) SetLocation(id int64, longitude, latitude float64, now time.Time) (models.UserSettings, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return models.UserSettings{}, err
	}
	user.Settings.Location = &models.LocationFix{
		Longitude:  longitude,
		Latitude:   latitude,
		LastUpdate: now,
	}
	if err := r.SaveSettings(id, user.Settings); err != nil {
		return models.UserSettings{}, err
	}
	return user.Settings, nil
}

// OwnsCompany сообщает, есть ли у пользователя хотя бы одна компания.
// Владельцам доступен профиль с входящими заказами.
func (r *UserRepository) OwnsCompany(id int64) (bool, error) {
	var exists bool
	err := r.db.Get(&exists, `SELECT EXISTS (SELECT 1 FROM companies WHERE owner_id = $1)`, id)
	if err != nil {
		r.logger.Error("Ошибка при проверке владения компанией",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return false, err
	}
	return exists, nil
}
