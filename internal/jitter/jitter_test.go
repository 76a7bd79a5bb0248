package jitter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeededIsDeterministic(t *testing.T) {
	a, b := Seeded(42), Seeded(42)
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestRanges(t *testing.T) {
	s := Seeded(7)
	for i := 0; i < 500; i++ {
		u := s.Uniform(-5, 10)
		require.GreaterOrEqual(t, u, -5.0)
		require.Less(t, u, 10.0)

		n := s.Intn(60, 85)
		require.GreaterOrEqual(t, n, 60)
		require.LessOrEqual(t, n, 85)

		p := s.Pick(3)
		require.GreaterOrEqual(t, p, 0)
		require.Less(t, p, 3)
	}
	require.Equal(t, 4, s.Intn(4, 4))
	require.Equal(t, 0, s.Pick(0))
}

func TestRound(t *testing.T) {
	require.Equal(t, 52.35, Round2(52.3461))
	require.Equal(t, 0.8, Round1(0.75))
}
