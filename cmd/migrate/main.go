package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/lib/pq"

	"github.com/byYuraGudan/PlaceTown/internal/config"
)

const migrationSchema = `
CREATE TABLE IF NOT EXISTS users (
    id          BIGINT PRIMARY KEY,
    full_name   TEXT NOT NULL DEFAULT '',
    username    TEXT NOT NULL DEFAULT '',
    lang        TEXT NOT NULL DEFAULT 'ru',
    phone       TEXT NOT NULL DEFAULT '',
    blocked     BOOLEAN NOT NULL DEFAULT false,
    settings    JSONB NOT NULL DEFAULT '{}',
    created     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS categories (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    hidden      BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS companies (
    id          BIGSERIAL PRIMARY KEY,
    category_id BIGINT NOT NULL REFERENCES categories (id),
    owner_id    BIGINT NOT NULL REFERENCES users (id),
    name        TEXT NOT NULL,
    description TEXT,
    address     TEXT,
    contact     TEXT,
    email       TEXT,
    site        TEXT,
    longitude   DOUBLE PRECISION,
    latitude    DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS time_works (
    id          BIGSERIAL PRIMARY KEY,
    company_id  BIGINT NOT NULL REFERENCES companies (id),
    week_day    SMALLINT NOT NULL,
    start_time  TIME NOT NULL,
    end_time    TIME NOT NULL,
    is_lunch    BOOLEAN NOT NULL DEFAULT false
);

CREATE TABLE IF NOT EXISTS services (
    id          BIGSERIAL PRIMARY KEY,
    company_id  BIGINT NOT NULL REFERENCES companies (id),
    type        SMALLINT NOT NULL DEFAULT 0,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS watch_company_users (
    company_id  BIGINT NOT NULL REFERENCES companies (id),
    user_id     BIGINT NOT NULL REFERENCES users (id),
    PRIMARY KEY (company_id, user_id)
);

CREATE TABLE IF NOT EXISTS grades (
    id          BIGSERIAL PRIMARY KEY,
    reviewer_id BIGINT NOT NULL REFERENCES users (id),
    company_id  BIGINT NOT NULL REFERENCES companies (id),
    mark        SMALLINT NOT NULL CHECK (mark BETWEEN 1 AND 5),
    created     TIMESTAMPTZ NOT NULL DEFAULT now(),
    UNIQUE (reviewer_id, company_id)
);

CREATE TABLE IF NOT EXISTS news (
    id           BIGSERIAL PRIMARY KEY,
    company_id   BIGINT NOT NULL REFERENCES companies (id),
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    notify_users BOOLEAN NOT NULL DEFAULT false,
    notified     BOOLEAN NOT NULL DEFAULT false,
    date_from    DATE,
    date_to      DATE,
    created      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
    id          BIGSERIAL PRIMARY KEY,
    status      SMALLINT NOT NULL DEFAULT 0,
    customer_id BIGINT NOT NULL REFERENCES users (id),
    service_id  BIGINT NOT NULL REFERENCES services (id),
    settings    JSONB NOT NULL DEFAULT '{}',
    created     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS orders_customer_idx ON orders (customer_id);
CREATE INDEX IF NOT EXISTS orders_service_idx ON orders (service_id);
CREATE INDEX IF NOT EXISTS companies_category_idx ON companies (category_id);
`

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Путь к файлу конфигурации")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Создаем DSN
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		log.Fatalf("Ошибка проверки подключения к базе данных: %v", err)
	}

	fmt.Println("Успешное подключение к базе данных")

	// Выполняем миграцию
	if _, err := db.Exec(migrationSchema); err != nil {
		log.Fatalf("Ошибка выполнения миграции: %v", err)
	}

	fmt.Println("Миграция успешно выполнена")
}
