// Package secmem holds secret bytes in locked memory regions with an
// explicit lifetime.
//
// A Container owns a single memguard-backed buffer allocated outside the
// ordinary Go heap (mlock'd, guard-paged, canary-checked). Related secrets
// can be attached to a parent container as child bindings, for example a KEM
// ciphertext bound to its shared secret, and are wiped together when the
// parent is closed.
//
// Cross-goroutine consumption goes through Export, which returns a heap
// copy owned by the caller. Direct buffer access via Bytes is reserved for
// the goroutine that owns the container; containers intended for direct
// sharing must be created in shared mode, where Bytes is refused and Export
// is the only read path.
package secmem
