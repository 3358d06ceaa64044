package secmem

import (
	"fmt"
	"runtime"

	"github.com/awnumar/memguard"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/metricskey"
)

// WipeError reports that both the memguard destroy path and the software
// zeroing fallback failed for a buffer. It is raised as a panic rather than
// returned: secret material can no longer be guaranteed erased, which is
// not a recoverable condition.
type WipeError struct {
	ContainerID string
	Primary     error
	Fallback    error
}

func (e *WipeError) Error() string {
	return fmt.Sprintf("secmem: wipe failed for container %s: primary=[%v], fallback=[%v]",
		e.ContainerID, e.Primary, e.Fallback)
}

// wipe releases the backing buffer, zeroing it first. The primary path is
// memguard's Destroy, which scrambles and unmaps the locked region. If that
// fails the buffer is zeroed in place with a pass the compiler cannot
// elide; skipping destruction silently is never an option.
func (c *Container) wipe() {
	buf := c.buf
	c.buf = nil
	if buf == nil {
		return
	}

	err := destroyBuffer(buf)
	if err == nil {
		return
	}

	metricskey.StatsWipeFallback.IncrCounter(1)
	logger.Errorf("reason=wipe_fallback, container=%s, err=[%+v]", c.id, err)

	if ferr := softZero(buf); ferr != nil {
		logger.Errorf("reason=wipe_failed, container=%s, err=[%+v]", c.id, ferr)
		panic(&WipeError{ContainerID: c.id, Primary: err, Fallback: ferr})
	}
}

func destroyBuffer(buf *memguard.LockedBuffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("memguard destroy: %v", r)
		}
	}()
	buf.Destroy()
	return nil
}

// softZero overwrites the buffer contents in place. memguard's WipeBytes
// writes through the slice without giving the optimizer a chance to drop
// the stores; KeepAlive pins the backing region until the pass completes.
func softZero(buf *memguard.LockedBuffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("software zeroing: %v", r)
		}
	}()
	buf.Melt()
	b := buf.Bytes()
	memguard.WipeBytes(b)
	runtime.KeepAlive(b)
	return nil
}
