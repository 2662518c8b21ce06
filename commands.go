package stratum

// EntityOperation is one deferred mutation a CommandBuffer can hold
// (spec.md §4.7). The teacher's operation_queue.go models the same
// "operation struct with an Apply method" shape; stratum keeps it and
// narrows the op set to the ones spec.md §4.7 actually names.
type EntityOperation interface {
	apply(w *World) error
}

// CommandBuffer is a per-system FIFO queue of deferred mutations, applied in
// enqueue order once the stage running the owning system finishes (spec.md
// §4.7).
type CommandBuffer struct {
	ops []EntityOperation
}

// NewCommandBuffer returns an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (b *CommandBuffer) enqueue(op EntityOperation) {
	b.ops = append(b.ops, op)
}

// applyTo drains every queued operation into w, in FIFO order, then clears
// the buffer. If an operation fails, the remaining queue is left intact so
// the caller can decide whether to retry or abandon it.
func (b *CommandBuffer) applyTo(w *World) error {
	for i, op := range b.ops {
		if err := op.apply(w); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = b.ops[:0]
	return nil
}

// Commands is the handle a system receives to defer world mutations instead
// of applying them immediately (spec.md §4.6: systems never mutate the
// world directly). It carries no component/resource access of its own for
// stage conflict analysis (§4.6) — its effects only land after the whole
// stage finishes, never aliasing a concurrently running system.
type Commands struct {
	buf *CommandBuffer
}

func newCommands(buf *CommandBuffer) Commands {
	return Commands{buf: buf}
}

// Commands carries no component/resource access of its own for stage
// conflict analysis (§4.6) — its effects only land after the whole stage
// finishes, so it never aliases a concurrently running system.
func (Commands) accessConst(*accessSet) {}
func (Commands) accessMut(*accessSet)   {}

// bindNew hands the system a Commands wrapping its own per-invocation
// buffer, so each system's deferred mutations drain independently and in
// system order once the stage finishes (spec.md §4.7).
func (Commands) bindNew(_ *World, cmds *CommandBuffer) Commands { return newCommands(cmds) }

// SpawnBundle enqueues spawning a new entity with every component in b.
func (c Commands) SpawnBundle(b Bundle) {
	c.buf.enqueue(spawnBundleOp{bundle: b})
}

// Despawn enqueues removing id.
func (c Commands) Despawn(id EntityId) {
	c.buf.enqueue(despawnOp{id: id})
}

// CommandsInsert enqueues attaching v to id.
func CommandsInsert[T any](c Commands, id EntityId, v T) {
	c.buf.enqueue(insertOp[T]{id: id, v: v})
}

// CommandsRemove enqueues detaching T from id.
func CommandsRemove[T any](c Commands, id EntityId) {
	c.buf.enqueue(removeOp[T]{id: id})
}

// CommandsInsertResource enqueues inserting the world resource of type T.
func CommandsInsertResource[T any](c Commands, v T) {
	c.buf.enqueue(insertResourceOp[T]{v: v})
}

// CommandsRemoveResource enqueues removing the world resource of type T.
func CommandsRemoveResource[T any](c Commands) {
	c.buf.enqueue(removeResourceOp[T]{})
}

type spawnBundleOp struct{ bundle Bundle }

func (op spawnBundleOp) apply(w *World) error {
	_, err := SpawnBundle(w, op.bundle)
	return err
}

type despawnOp struct{ id EntityId }

func (op despawnOp) apply(w *World) error { return w.Despawn(op.id) }

type insertOp[T any] struct {
	id EntityId
	v  T
}

func (op insertOp[T]) apply(w *World) error { return InsertComponent[T](w, op.id, op.v) }

type removeOp[T any] struct{ id EntityId }

func (op removeOp[T]) apply(w *World) error { return RemoveComponent[T](w, op.id) }

type insertResourceOp[T any] struct{ v T }

func (op insertResourceOp[T]) apply(w *World) error {
	InsertResource[T](w, op.v)
	return nil
}

type removeResourceOp[T any] struct{}

func (op removeResourceOp[T]) apply(w *World) error {
	RemoveResource[T](w)
	return nil
}
