package secmem

import (
	"sync"

	"github.com/awnumar/memguard"
	"github.com/effective-security/x/guid"
	"github.com/effective-security/xlog"
	"github.com/pkg/errors"

	"github.com/qu4nt/entlib-go/metricskey"
)

var logger = xlog.NewPackageLogger("github.com/qu4nt/entlib-go", "secmem")

// Error kinds surfaced by container operations.
var (
	// ErrClosed is returned for reads, exports and child lookups on a
	// container that has been closed.
	ErrClosed = errors.New("secmem: container is closed")

	// ErrAlreadyClosed is returned when a child attachment races with
	// Close and loses; the caller keeps ownership of the child.
	ErrAlreadyClosed = errors.New("secmem: container already closed")

	// ErrOutOfBounds is returned for invalid child binding indices.
	ErrOutOfBounds = errors.New("secmem: binding index out of bounds")

	// ErrSharedAccess is returned by Bytes on shared-mode containers,
	// which only support consumption through Export.
	ErrSharedAccess = errors.New("secmem: shared container only supports Export")
)

// Container is an owned region of secret bytes with explicit lifetime.
// The buffer size is fixed at construction. A container is either fully
// open or fully closed; Close wipes the buffer and every child binding.
type Container struct {
	id     string
	shared bool

	mu       sync.Mutex
	buf      *memguard.LockedBuffer // nil for zero-length containers
	size     int
	closed   bool
	children []*Container
}

func newContainer(buf *memguard.LockedBuffer, size int, shared bool) *Container {
	metricskey.StatsContainerCreated.IncrCounter(1)
	return &Container{
		id:     guid.MustCreate(),
		shared: shared,
		buf:    buf,
		size:   size,
	}
}

// New allocates a zero-initialized locked region of size bytes.
// It panics if size is negative. A size of zero yields an empty container.
func New(size int) *Container {
	return alloc(size, false, false)
}

// NewRandom allocates a locked region of size bytes filled from the
// cryptographically secure random source, for IV, nonce and scratch use.
func NewRandom(size int) *Container {
	return alloc(size, true, false)
}

// NewShared is New for containers that will be read from goroutines other
// than the creator. Shared containers refuse direct Bytes access; Export is
// the only read path.
func NewShared(size int) *Container {
	return alloc(size, false, true)
}

func alloc(size int, random, shared bool) *Container {
	if size < 0 {
		logger.Panicf("reason=negative_size, size=%d", size)
	}
	if size == 0 {
		return newContainer(nil, 0, shared)
	}
	var buf *memguard.LockedBuffer
	if random {
		buf = memguard.NewBufferRandom(size)
	} else {
		buf = memguard.NewBuffer(size)
	}
	return newContainer(buf, size, shared)
}

// NewFromBytes copies src into a locked region and overwrites src with
// zeros before returning, so no copy of the secret survives at the caller.
// src must be non-nil; an empty slice yields an empty container.
func NewFromBytes(src []byte) *Container {
	return fromBytes(src, false)
}

// NewSharedFromBytes is NewFromBytes in shared mode.
func NewSharedFromBytes(src []byte) *Container {
	return fromBytes(src, true)
}

func fromBytes(src []byte, shared bool) *Container {
	if src == nil {
		logger.Panicf("reason=nil_source")
	}
	if len(src) == 0 {
		return newContainer(nil, 0, shared)
	}
	// NewBufferFromBytes wipes src after the copy.
	buf := memguard.NewBufferFromBytes(src)
	return newContainer(buf, buf.Size(), shared)
}

// ID returns an opaque instance identifier, safe for logging.
func (c *Container) ID() string {
	return c.id
}

// Len returns the fixed buffer size in bytes.
func (c *Container) Len() int {
	return c.size
}

// IsShared reports whether the container was created in shared mode.
func (c *Container) IsShared() bool {
	return c.shared
}

// IsClosed reports whether Close has been observed.
func (c *Container) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Bytes returns a zero-copy view of the buffer, valid only within the
// owning goroutine and only until Close. Shared containers return
// ErrSharedAccess; use Export instead.
func (c *Container) Bytes() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	if c.shared {
		return nil, errors.WithStack(ErrSharedAccess)
	}
	if c.buf == nil {
		return []byte{}, nil
	}
	return c.buf.Bytes(), nil
}

// Export returns a heap copy of the buffer, usable from any goroutine.
// The copy is the caller's responsibility to erase. Export is repeatable
// and does not consume the internal buffer.
func (c *Container) Export() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	out := make([]byte, c.size)
	if c.buf != nil {
		copy(out, c.buf.Bytes())
	}
	return out, nil
}

// Attach appends child to this container's binding list. The call is
// atomic with respect to a concurrent Close: either the child is absorbed
// and will be wiped by the close, or ErrAlreadyClosed is returned and the
// caller retains ownership of the still-open child.
func (c *Container) Attach(child *Container) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.WithStack(ErrAlreadyClosed)
	}
	c.children = append(c.children, child)
	return nil
}

// AttachNew allocates a new container of size bytes and binds it as a
// child, atomically with respect to Close.
func (c *Container) AttachNew(size int) (*Container, error) {
	child := New(size)
	if err := c.Attach(child); err != nil {
		child.Close()
		return nil, err
	}
	return child, nil
}

// AttachBytes copies src into a new bound child and wipes src. If the
// parent is already closed, src is still wiped before the error is
// returned, so the secret never lingers at the caller.
func (c *Container) AttachBytes(src []byte) (*Container, error) {
	child := NewFromBytes(src)
	if err := c.Attach(child); err != nil {
		child.Close()
		return nil, err
	}
	return child, nil
}

// Child returns the bound child at the given index.
func (c *Container) Child(index int) (*Container, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, errors.WithStack(ErrClosed)
	}
	if index < 0 || index >= len(c.children) {
		return nil, errors.WithMessagef(ErrOutOfBounds, "index %d of %d", index, len(c.children))
	}
	return c.children[index], nil
}

// Children returns the current number of bound children.
func (c *Container) Children() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.children)
}

// Close wipes and releases the container and, recursively, every bound
// child in insertion order. It is idempotent and safe under arbitrary
// concurrent invocation: exactly one caller performs the wipe sequence and
// all others return immediately. A wipe failure on both the memguard and
// the software zeroing path panics with *WipeError, since execution cannot
// continue once secret material is no longer guaranteed erased.
func (c *Container) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// Marking closed under the lock makes the add-vs-close race
	// deterministic: every Attach after this point fails with
	// ErrAlreadyClosed, so the snapshot below is complete.
	c.closed = true
	snapshot := c.children
	c.children = nil
	c.mu.Unlock()

	// A fatal wipe error in one child must not leave the remaining
	// buffers of the close chain unwiped; it is re-raised only after the
	// whole tree has been processed.
	var fatal *WipeError
	for _, child := range snapshot {
		if we := closeChild(child); we != nil && fatal == nil {
			fatal = we
		}
	}

	c.wipe()
	metricskey.StatsContainerClosed.IncrCounter(1)

	if fatal != nil {
		panic(fatal)
	}
}

func closeChild(child *Container) (fatal *WipeError) {
	defer func() {
		if r := recover(); r != nil {
			if we, ok := r.(*WipeError); ok {
				fatal = we
				return
			}
			fatal = &WipeError{ContainerID: child.id, Primary: errors.Errorf("close panic: %v", r)}
		}
	}()
	child.Close()
	return nil
}
