package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySameLock(t *testing.T) {
	lm := NewLockManager()
	assert.Same(t, lm.GetLock("student-1"), lm.GetLock("student-1"))
	assert.NotSame(t, lm.GetLock("student-1"), lm.GetLock("student-2"))
}

func TestLockManager_SerializesPerKey(t *testing.T) {
	lm := NewLockManager()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := lm.GetLock("student-1")
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}
