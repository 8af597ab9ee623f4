package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDropsWhenFull(t *testing.T) {
	s, err := New(time.UTC, time.Minute)
	require.NoError(t, err)

	fixed := time.Date(2024, 1, 1, 7, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	for i := 0; i < cap(s.ticks)+3; i++ {
		s.emit(TickMinute)
	}
	assert.Len(t, s.ticks, cap(s.ticks))

	tick := <-s.Ticks()
	assert.Equal(t, TickMinute, tick.Kind)
	assert.Equal(t, fixed, tick.At)
}

func TestTickInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	s, err := New(loc, time.Minute)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 1, 1, 4, 30, 0, 0, time.UTC) }

	s.emit(TickMinute)
	tick := <-s.Ticks()
	assert.Equal(t, 7, tick.At.Hour())
	assert.Equal(t, loc, tick.At.Location())
}

func TestKeepAliveFires(t *testing.T) {
	s, err := New(time.UTC, time.Second)
	require.NoError(t, err)

	s.Start()
	defer s.Stop(context.Background())

	timeout := time.After(5 * time.Second)
	for {
		select {
		case tick := <-s.Ticks():
			if tick.Kind == TickKeepAlive {
				return
			}
		case <-timeout:
			t.Fatal("no keep-alive tick")
		}
	}
}
