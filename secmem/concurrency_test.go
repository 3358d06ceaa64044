package secmem

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentClose(t *testing.T) {
	const goroutines = 32

	parent := New(64)
	for i := 0; i < 8; i++ {
		_, err := parent.AttachNew(16)
		require.NoError(t, err)
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			parent.Close()
		}()
	}
	close(start)
	wg.Wait()

	assert.True(t, parent.IsClosed())
	_, err := parent.Export()
	assert.True(t, errors.Is(err, ErrClosed))
}

// Attach racing with Close must end in exactly one of two states: the
// child absorbed and closed with the parent, or rejected and still open.
func TestAttachCloseRace(t *testing.T) {
	for i := 0; i < 1000; i++ {
		parent := New(8)
		child := New(8)

		var wg sync.WaitGroup
		var attachErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			attachErr = parent.Attach(child)
		}()
		go func() {
			defer wg.Done()
			parent.Close()
		}()
		wg.Wait()

		// Attach may have won the race; the parent close then owns the child.
		parent.Close()

		if attachErr != nil {
			require.True(t, errors.Is(attachErr, ErrAlreadyClosed))
			assert.False(t, child.IsClosed())
			child.Close()
		} else {
			assert.True(t, child.IsClosed())
		}
	}
}

func TestConcurrentExport(t *testing.T) {
	c := NewShared(32)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := c.Export()
			if err == nil {
				assert.Len(t, b, 32)
			}
		}()
	}
	wg.Wait()
	c.Close()
}
