package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestScheduleOnceFires(t *testing.T) {
	s := New(zap.NewNop())
	defer s.Stop()

	fired := make(chan struct{})
	id := s.ScheduleOnce(10*time.Millisecond, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("задание не сработало")
	}

	// сработавшее задание удалилось из реестра и не отменяется
	assert.False(t, s.Cancel(id))
}

func TestCancel(t *testing.T) {
	s := New(zap.NewNop())
	defer s.Stop()

	fired := make(chan struct{})
	id := s.ScheduleOnce(50*time.Millisecond, func() {
		close(fired)
	})

	assert.True(t, s.Cancel(id))
	// повторная отмена - задание уже неизвестно
	assert.False(t, s.Cancel(id))

	select {
	case <-fired:
		t.Fatal("отменённое задание сработало")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStopCancelsAll(t *testing.T) {
	s := New(zap.NewNop())

	fired := make(chan struct{}, 2)
	s.ScheduleOnce(50*time.Millisecond, func() { fired <- struct{}{} })
	s.ScheduleOnce(50*time.Millisecond, func() { fired <- struct{}{} })
	s.Stop()

	select {
	case <-fired:
		t.Fatal("задание сработало после остановки")
	case <-time.After(100 * time.Millisecond):
	}
}
