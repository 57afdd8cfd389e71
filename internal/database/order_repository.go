package database

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/models"
)

var (
	// ErrServiceBooked - по услуге бронирования уже есть
	// незавершённый заказ.
	ErrServiceBooked = errors.New("услуга уже забронирована")
)

// Колонки заказа с данными обеих сторон для отображения.
const orderColumns = `
        o.id,
        o.status,
        o.customer_id,
        o.service_id,
        o.settings,
        o.created,
        o.updated,
        s.name AS service_name,
        c.name AS company_name,
        COALESCE(c.contact, '') AS company_contact,
        c.owner_id AS performer_id,
        u.full_name AS customer_name,
        u.phone AS customer_phone
`

const orderJoins = `
        FROM orders o
        JOIN services s ON s.id = o.service_id
        JOIN companies c ON c.id = s.company_id
        JOIN users u ON u.id = o.customer_id
`

// OrderRepository представляет репозиторий для работы с заказами
type OrderRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *sqlx.DB, logger *zap.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create создает заказ в статусе "ожидает". Для услуги бронирования
// внутри транзакции проверяется, что незавершённого заказа по ней нет.
func (r *OrderRepository) Create(customerID, serviceID int64) (models.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		r.logger.Error("Ошибка при начале транзакции", zap.Error(err))
		return models.Order{}, err
	}
	defer tx.Rollback() // Откатываем транзакцию в случае ошибки

	var serviceType models.ServiceType
	err = tx.Get(&serviceType, `SELECT type FROM services WHERE id = $1 FOR UPDATE`, serviceID)
	if err != nil {
		r.logger.Error("Ошибка при получении типа услуги",
			zap.Error(err),
			zap.Int64("service_id", serviceID),
		)
		return models.Order{}, err
	}

	if serviceType == models.ServiceTypeBooking {
		var busy bool
		err = tx.Get(&busy,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE service_id = $1 AND status NOT IN (2, 3))`,
			serviceID,
		)
		if err != nil {
			r.logger.Error("Ошибка при проверке бронирования услуги",
				zap.Error(err),
				zap.Int64("service_id", serviceID),
			)
			return models.Order{}, err
		}
		if busy {
			return models.Order{}, ErrServiceBooked
		}
	}

	var orderID int64
	err = tx.QueryRow(
		`INSERT INTO orders (customer_id, service_id, status, settings)
         VALUES ($1, $2, $3, '{}') RETURNING id`,
		customerID, serviceID, models.OrderStatusWaiting,
	).Scan(&orderID)
	if err != nil {
		r.logger.Error("Ошибка при создании заказа",
			zap.Error(err),
			zap.Int64("customer_id", customerID),
			zap.Int64("service_id", serviceID),
		)
		return models.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		r.logger.Error("Ошибка при фиксации транзакции", zap.Error(err))
		return models.Order{}, err
	}

	return r.GetByID(orderID)
}

func (r *OrderRepository) GetByID(orderID int64) (models.Order, error) {
	var order models.Order
	query := `SELECT ` + orderColumns + orderJoins + ` WHERE o.id = $1`

	err := r.db.Get(&order, query, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, nil // Заказ не найден
		}
		r.logger.Error("Ошибка при получении заказа",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return models.Order{}, err
	}

	return order, nil
}

func (r *OrderRepository) UpdateStatus(orderID int64, status models.OrderStatus) error {
	_, err := r.db.Exec(`UPDATE orders SET status = $1, updated = now() WHERE id = $2`, status, orderID)
	if err != nil {
		r.logger.Error("Ошибка при обновлении статуса заказа",
			zap.Error(err),
			zap.Int64("order_id", orderID),
			zap.Int("status", int(status)),
		)
		return err
	}
	return nil
}

// SaveSettings сохраняет идентификаторы "живых" сообщений заказа.
func (r *OrderRepository) SaveSettings(orderID int64, settings models.OrderSettings) error {
	_, err := r.db.Exec(`UPDATE orders SET settings = $1 WHERE id = $2`, settings, orderID)
	if err != nil {
		r.logger.Error("Ошибка при сохранении настроек заказа",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return err
	}
	return nil
}

// ServiceBooked - по услуге бронирования висит незавершённый заказ.
func (r *OrderRepository) ServiceBooked(serviceID int64) (bool, error) {
	var busy bool
	err := r.db.Get(&busy, `
        SELECT EXISTS (
            SELECT 1 FROM orders o
            JOIN services s ON s.id = o.service_id
            WHERE o.service_id = $1 AND s.type = 1 AND o.status NOT IN (2, 3)
        )`, serviceID)
	if err != nil {
		r.logger.Error("Ошибка при проверке бронирования услуги",
			zap.Error(err),
			zap.Int64("service_id", serviceID),
		)
		return false, err
	}
	return busy, nil
}

// Outgoing - заказы пользователя как клиента, свежие сверху.
func (r *OrderRepository) Outgoing(customerID int64, hidden []models.OrderStatus) ([]models.Order, error) {
	return r.listOrders(sq.Eq{"o.customer_id": customerID}, hidden)
}

// Incoming - заказы на компании пользователя-владельца, свежие сверху.
func (r *OrderRepository) Incoming(ownerID int64, hidden []models.OrderStatus) ([]models.Order, error) {
	return r.listOrders(sq.Eq{"c.owner_id": ownerID}, hidden)
}

func (r *OrderRepository) listOrders(where sq.Eq, hidden []models.OrderStatus) ([]models.Order, error) {
	q := builder.
		Select("o.id", "o.status", "o.customer_id", "o.service_id", "o.updated", "s.name AS service_name").
		From("orders o").
		Join("services s ON s.id = o.service_id").
		Join("companies c ON c.id = s.company_id").
		Where(where).
		OrderBy("o.updated DESC")

	if len(hidden) > 0 {
		q = q.Where(sq.NotEq{"o.status": hidden})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	if err := r.db.Select(&orders, query, args...); err != nil {
		r.logger.Error("Ошибка при получении списка заказов", zap.Error(err))
		return nil, err
	}
	return orders, nil
}
