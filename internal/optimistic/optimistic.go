// Package optimistic implements the update-then-persist pattern used by
// state that must reflect a mutation immediately: apply the local
// transition, notify observers, fire the persistence call, and replay the
// inverse transition when persistence fails.
package optimistic

// Do swaps *state to next and notifies before persist runs. When persist
// returns an error the previous value is restored, observers are notified
// again, and the error is returned to the caller. next must not share
// mutable structure with the current value or the rollback is meaningless.
func Do[T any](state *T, next T, notify func(T), persist func() error) error {
	prev := *state
	*state = next
	if notify != nil {
		notify(next)
	}

	if err := persist(); err != nil {
		*state = prev
		if notify != nil {
			notify(prev)
		}
		return err
	}
	return nil
}
