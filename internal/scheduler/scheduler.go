// Package scheduler - одноразовые отложенные задания. Планировщик
// создаётся один раз при старте процесса и передаётся сервисам,
// которым нужны отложенные действия.
package scheduler

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler запускает задание один раз после задержки. Сработавшее или
// отменённое задание удаляется из реестра само.
type Scheduler struct {
	logger *zap.Logger

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// ScheduleOnce откладывает задание и возвращает его идентификатор.
func (s *Scheduler) ScheduleOnce(delay time.Duration, job func()) uuid.UUID {
	id := uuid.New()

	s.mu.Lock()
	s.timers[id] = time.AfterFunc(delay, func() {
		s.remove(id)
		job()
	})
	s.mu.Unlock()

	s.logger.Debug("Запланировано отложенное задание",
		zap.String("job_id", id.String()),
		zap.Duration("delay", delay),
	)
	return id
}

// Cancel снимает ещё не сработавшее задание. Возвращает false, если
// задание уже сработало или неизвестно.
func (s *Scheduler) Cancel(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return timer.Stop()
}

// Stop снимает все незапущенные задания при остановке процесса.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

func (s *Scheduler) remove(id uuid.UUID) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()
}
