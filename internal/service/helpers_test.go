package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storykeep/internal/auth"
)

func testHasher(t *testing.T) *auth.Hasher {
	t.Helper()
	p := auth.DefaultParams()
	p.Memory = auth.MinMemoryKiB
	p.Iterations = 1
	p.Parallelism = 1
	h, err := auth.NewHasher(p)
	require.NoError(t, err)
	return h
}

func collecting() (context.Context, *Collector) {
	c := &Collector{}
	return WithNotifier(context.Background(), c), c
}

var nopLogger = zap.NewNop()
