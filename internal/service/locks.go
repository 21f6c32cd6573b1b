package service

import (
	"sync"

	"github.com/google/uuid"
)

// DiaryLocker выдаёт эксклюзивные блокировки по ID дневника: все мутации
// одного дневника (брони и правило) сериализуются, разные дневники
// независимы. Реестр не сжимается — записей ровно столько, сколько
// дневников трогал процесс.
type DiaryLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewDiaryLocker() *DiaryLocker {
	return &DiaryLocker{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock блокирует дневник и возвращает функцию разблокировки.
func (l *DiaryLocker) Lock(diaryID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[diaryID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[diaryID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
