package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeLedger_OpenRecord(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Open", func(t *testing.T) {
		l := &TimeLedger{}
		err := l.OpenRecord(base)
		assert.NoError(t, err)
		assert.Len(t, l.Records, 1)
		assert.True(t, l.HasOpenRecord())
	})

	t.Run("SecondOpenRejected", func(t *testing.T) {
		l := &TimeLedger{}
		assert.NoError(t, l.OpenRecord(base))
		err := l.OpenRecord(base.Add(time.Minute))
		assert.ErrorIs(t, err, ErrAlreadyOpen)
		assert.Len(t, l.Records, 1)
	})

	t.Run("ReopenAfterClose", func(t *testing.T) {
		l := &TimeLedger{}
		assert.NoError(t, l.OpenRecord(base))
		assert.NoError(t, l.CloseRecord(base.Add(time.Hour)))
		assert.NoError(t, l.OpenRecord(base.Add(2*time.Hour)))
		assert.Len(t, l.Records, 2)
	})
}

func TestTimeLedger_CloseRecord(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("NoOpenRecord", func(t *testing.T) {
		l := &TimeLedger{}
		assert.ErrorIs(t, l.CloseRecord(base), ErrNoOpenRecord)
	})

	t.Run("OutBeforeIn", func(t *testing.T) {
		l := &TimeLedger{}
		assert.NoError(t, l.OpenRecord(base))
		err := l.CloseRecord(base.Add(-time.Minute))
		assert.ErrorIs(t, err, ErrInvalidOrder)
		assert.True(t, l.HasOpenRecord())
	})

	t.Run("Close", func(t *testing.T) {
		l := &TimeLedger{}
		assert.NoError(t, l.OpenRecord(base))
		assert.NoError(t, l.CloseRecord(base.Add(90*time.Minute)))
		assert.False(t, l.HasOpenRecord())
		assert.True(t, l.HasClosedRecord())
	})
}

func TestTimeLedger_TotalHours(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := &TimeLedger{}

	assert.Zero(t, l.TotalHours())

	assert.NoError(t, l.OpenRecord(base))
	assert.NoError(t, l.CloseRecord(base.Add(90*time.Minute)))
	assert.InDelta(t, 1.5, l.TotalHours(), 1e-9)

	// An open record contributes nothing until closed.
	assert.NoError(t, l.OpenRecord(base.Add(3*time.Hour)))
	assert.InDelta(t, 1.5, l.TotalHours(), 1e-9)

	assert.NoError(t, l.CloseRecord(base.Add(5*time.Hour)))
	assert.InDelta(t, 3.5, l.TotalHours(), 1e-9)
}

func TestTimeLedger_AtMostOneOpenRecord(t *testing.T) {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	l := &TimeLedger{}

	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		_ = l.OpenRecord(at)
		if i%2 == 0 {
			_ = l.CloseRecord(at.Add(30 * time.Minute))
		}
	}

	open := 0
	for _, rec := range l.Records {
		if rec.TimeOut == nil {
			open++
		}
	}
	assert.LessOrEqual(t, open, 1)
}
