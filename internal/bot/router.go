package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// Ctx - контекст одного нажатия кнопки: запрос, декодированные
// параметры токена и пользователь, перечитанный из хранилища.
// Состояние между событиями не живёт.
type Ctx struct {
	Query  *tgbotapi.CallbackQuery
	Params callback.Params
	User   models.User

	// answered - на callback уже ответили; Telegram принимает только
	// один ответ на запрос.
	answered bool
}

func (c *Ctx) ChatID() int64 {
	return c.Query.Message.Chat.ID
}

func (c *Ctx) MessageID() int {
	return c.Query.Message.MessageID
}

// HandlerFunc - обработчик одного экрана.
type HandlerFunc func(ctx *Ctx) error

// Router - статическая таблица экранов: команда токена - обработчик.
// Заполняется один раз при старте, дальше только читается.
type Router struct {
	logger   *zap.Logger
	handlers map[string]HandlerFunc
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		logger:   logger,
		handlers: make(map[string]HandlerFunc),
	}
}

func (r *Router) Register(command string, handler HandlerFunc) {
	if _, exists := r.handlers[command]; exists {
		r.logger.Warn("Повторная регистрация команды", zap.String("command", command))
	}
	r.handlers[command] = handler
}

// Dispatch находит обработчик команды и передаёт ему контекст.
// Неизвестная команда - ошибка протокола, логируем и идём дальше.
func (r *Router) Dispatch(command string, ctx *Ctx) error {
	handler, ok := r.handlers[command]
	if !ok {
		r.logger.Warn("Нет обработчика для команды",
			zap.String("command", command),
			zap.Int64("user_id", ctx.User.ID),
		)
		return nil
	}
	return handler(ctx)
}
