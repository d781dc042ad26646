package optimistic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoCommit(t *testing.T) {
	state := 1
	var seen []int

	err := Do(&state, 2, func(v int) { seen = append(seen, v) }, func() error { return nil })

	assert.NoError(t, err)
	assert.Equal(t, 2, state)
	assert.Equal(t, []int{2}, seen)
}

func TestDoRollback(t *testing.T) {
	state := 1
	var seen []int
	boom := errors.New("persist failed")

	err := Do(&state, 2, func(v int) { seen = append(seen, v) }, func() error { return boom })

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, state)
	// Observers see the optimistic value, then the rollback.
	assert.Equal(t, []int{2, 1}, seen)
}

func TestDoNilNotify(t *testing.T) {
	state := "a"
	err := Do(&state, "b", nil, func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, "b", state)
}
