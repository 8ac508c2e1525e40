package voting

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex(t *testing.T) {
	locks := newKeyedMutex[int64]()

	t.Run("Happy path - same key is exclusive", func(t *testing.T) {
		var wg sync.WaitGroup
		counter := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.Lock(1)
				defer unlock()
				counter++
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, counter)
	})

	t.Run("Happy path - distinct keys do not block", func(t *testing.T) {
		unlockA := locks.Lock(1)
		unlockB := locks.Lock(2)
		assert.Equal(t, 2, locks.size())
		unlockA()
		unlockB()
	})

	assert.Zero(t, locks.size(), "released keys are dropped")
}
