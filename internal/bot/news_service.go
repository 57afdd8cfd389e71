package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/byYuraGudan/PlaceTown/internal/callback"
	"github.com/byYuraGudan/PlaceTown/internal/models"
)

// JobScheduler откладывает разовые задания. Реализация инжектируется,
// чтобы тестам не приходилось ждать таймеров.
type JobScheduler interface {
	ScheduleOnce(delay time.Duration, job func()) uuid.UUID
	Cancel(id uuid.UUID) bool
}

// NewsService рассылает новости компаний их подписчикам. Рассылка
// откладывается через планировщик; к моменту срабатывания новость и
// список подписчиков перечитываются заново.
type NewsService struct {
	telegram  Messenger
	logger    *zap.Logger
	news      NewsStore
	scheduler JobScheduler
}

func NewNewsService(telegram Messenger, logger *zap.Logger, news NewsStore, scheduler JobScheduler) *NewsService {
	return &NewsService{
		telegram:  telegram,
		logger:    logger,
		news:      news,
		scheduler: scheduler,
	}
}

// SchedulePending ставит в план рассылку всех неразосланных новостей.
// Вызывается при старте: новости, не успевшие разослаться до
// перезапуска, не теряются. Новость с будущим date_from уходит в момент
// начала окна, остальные - сразу.
func (s *NewsService) SchedulePending() error {
	pending, err := s.news.PendingNotifications()
	if err != nil {
		return err
	}
	now := time.Now()
	for _, news := range pending {
		var delay time.Duration
		if news.DateFrom != nil && news.DateFrom.After(now) {
			delay = news.DateFrom.Sub(now)
		}
		s.ScheduleNotification(news.ID, delay)
	}
	return nil
}

// ScheduleNotification откладывает рассылку новости на delay.
func (s *NewsService) ScheduleNotification(newsID int64, delay time.Duration) uuid.UUID {
	jobID := s.scheduler.ScheduleOnce(delay, func() {
		s.Notify(newsID)
	})
	s.logger.Info("Рассылка новости запланирована",
		zap.Int64("news_id", newsID),
		zap.Duration("delay", delay),
		zap.String("job_id", jobID.String()),
	)
	return jobID
}

// Notify рассылает новость подписчикам компании. Новость без флага
// рассылки или вне окна действия молча пропускается: её могли
// отредактировать после планирования.
func (s *NewsService) Notify(newsID int64) {
	news, err := s.news.GetByID(newsID)
	if err != nil {
		s.logger.Error("Не удалось прочитать новость для рассылки",
			zap.Error(err),
			zap.Int64("news_id", newsID),
		)
		return
	}
	if news.ID == 0 || !news.NotifyUsers || news.Notified || !news.Active(time.Now()) {
		return
	}

	watchers, err := s.news.Watchers(news.CompanyID)
	if err != nil {
		s.logger.Error("Не удалось получить подписчиков компании",
			zap.Error(err),
			zap.Int64("company_id", news.CompanyID),
		)
		return
	}

	// Помечаем до отправки: лучше потерять рассылку на сбое, чем
	// разослать дважды.
	if err := s.news.MarkNotified(news.ID); err != nil {
		return
	}

	text := fmt.Sprintf(textNewsNotification,
		news.CompanyName,
		news.Title,
		news.Description,
		newsWindow(news),
	)
	markup, err := s.companyButton(news.CompanyID)
	if err != nil {
		s.logger.Error("Не удалось собрать кнопку компании для новости",
			zap.Error(err),
			zap.Int64("news_id", news.ID),
		)
		return
	}

	sent := 0
	for _, watcher := range watchers {
		if _, err := s.telegram.SendMessageWithInlineKeyboard(watcher.ID, text, markup); err != nil {
			// Пользователь мог заблокировать бота, остальных это
			// не касается.
			s.logger.Warn("Не удалось отправить новость подписчику",
				zap.Error(err),
				zap.Int64("user_id", watcher.ID),
				zap.Int64("news_id", news.ID),
			)
			continue
		}
		sent++
	}

	s.logger.Info("Новость разослана",
		zap.Int64("news_id", news.ID),
		zap.Int("recipients", sent),
	)
}

func (s *NewsService) companyButton(companyID int64) (tgbotapi.InlineKeyboardMarkup, error) {
	token, err := callback.Encode(cmdCompanyDetail, callback.Params{"id": int(companyID)})
	if err != nil {
		return tgbotapi.InlineKeyboardMarkup{}, err
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData(btnCompany, token)},
	}}, nil
}

const newsDateLayout = "02.01.2006"

func newsWindow(news models.News) string {
	switch {
	case news.DateFrom != nil && news.DateTo != nil:
		return fmt.Sprintf("Действует с %s по %s",
			news.DateFrom.Format(newsDateLayout), news.DateTo.Format(newsDateLayout))
	case news.DateFrom != nil:
		return fmt.Sprintf("Действует с %s", news.DateFrom.Format(newsDateLayout))
	case news.DateTo != nil:
		return fmt.Sprintf("Действует по %s", news.DateTo.Format(newsDateLayout))
	}
	return "Бессрочно"
}
