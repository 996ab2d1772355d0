// Package command provides the composite command and the leaf commands it
// aggregates.
//
// A command is any comparable value implementing [Executor] (synchronous)
// or [AsyncExecutor] (blocking, context-aware). Commands may also
// implement [Guard] to report whether they can currently execute, and
// [Notifier] to publish availability changes on an event bus.
//
// # Composite
//
// [Composite] holds an ordered set of unique children (compared by
// identity) and presents them as one command:
//
//	save, _ := command.New([]command.Command{saveDoc, saveLayout},
//	    command.WithName("save-all"),
//	    command.WithMode(command.ModeAny),
//	)
//	defer save.Dispose()
//
//	if save.CanExecute(nil) {
//	    err := save.ExecuteAsync(ctx, nil)
//	}
//
// The [Mode] decides how child guards combine:
//
//   - [ModeAll]: every child must be executable; all children run.
//   - [ModeAny]: one executable child suffices; unavailable ones are skipped.
//   - [ModeFirst]: only the first child decides; the run stops at the first
//     unavailable child.
//
// Execution is sequential over a snapshot of the children taken when the
// run starts. The first child error ends the run and is returned as-is;
// cancellation of ctx is observed before each child and returned as
// ctx.Err().
//
// # Leaf Commands
//
// [Relay], [AsyncRelay] and [Toggle] adapt functions into commands and
// publish availability changes when asked via RaiseCanExecuteChanged.
package command
