package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocks_SameUserSameMutex(t *testing.T) {
	locks := NewUserLocks()

	first := locks.For(123)
	second := locks.For(123)

	assert.Same(t, first, second)
}

func TestUserLocks_DifferentUsersDifferentMutexes(t *testing.T) {
	locks := NewUserLocks()

	assert.NotSame(t, locks.For(123), locks.For(456))
}

func TestUserLocks_ConcurrentAccess(t *testing.T) {
	locks := NewUserLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := locks.For(123)
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
