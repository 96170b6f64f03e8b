package usecase_test

import (
	"context"
	"errors"
	"testing"

	"internport-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthCheck(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("healthy without redis", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(up, nil).Check(context.Background())
		assert.True(t, ok)
		assert.Equal(t, "ok", status["status"])
		assert.Equal(t, "disabled", status["redis"])
	})

	t.Run("redis failure does not degrade", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(up, down.Ping).Check(context.Background())
		assert.True(t, ok)
		assert.Equal(t, "unavailable", status["redis"])
	})

	t.Run("database failure degrades", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(down, up.Ping).Check(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "unavailable", status["database"])
		assert.Equal(t, "ok", status["redis"])
	})
}
