package async_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/domain/model"
	"github.com/secmon-lab/covidash/pkg/domain/types"
	"github.com/secmon-lab/covidash/pkg/utils/async"
)

func waitGroup(t *testing.T, wg *sync.WaitGroup, timeout time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("async handler did not complete within timeout")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("Execute handler asynchronously", func(t *testing.T) {
		var wg sync.WaitGroup
		executed := false

		wg.Add(1)
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			executed = true
			return nil
		})

		waitGroup(t, &wg, time.Second)
		gt.True(t, executed)
	})

	t.Run("Handle errors in async handler", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			return goerr.New("test error")
		})
		waitGroup(t, &wg, time.Second)
	})

	t.Run("Recover from panic in async handler", func(t *testing.T) {
		var wg sync.WaitGroup
		wg.Add(1)
		async.Dispatch(context.Background(), func(ctx context.Context) error {
			defer wg.Done()
			panic("test panic")
		})
		waitGroup(t, &wg, time.Second)
	})

	t.Run("Handler outlives a canceled request context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		var handlerErr error

		wg.Add(1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
			handlerErr = ctx.Err()
			return nil
		})
		cancel()

		waitGroup(t, &wg, time.Second)
		gt.NoError(t, handlerErr)
	})
}

func TestContextPreservation(t *testing.T) {
	t.Run("AuthContext is preserved", func(t *testing.T) {
		authCtx := &model.AuthContext{Subject: "analyst", Scopes: []string{model.ScopeQuery}}
		ctx := model.WithAuthContext(context.Background(), authCtx)

		var wg sync.WaitGroup
		var preserved *model.AuthContext

		wg.Add(1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			defer wg.Done()
			preserved, _ = model.GetAuthContext(ctx)
			return nil
		})

		waitGroup(t, &wg, time.Second)
		gt.NotNil(t, preserved)
		gt.Equal(t, preserved.Subject, authCtx.Subject)
		gt.True(t, preserved.HasScope(model.ScopeQuery))
	})

	t.Run("Logger is preserved in background context", func(t *testing.T) {
		ctx := ctxlog.With(context.Background(), ctxlog.From(context.Background()))

		var wg sync.WaitGroup
		var hasLogger bool

		wg.Add(1)
		async.Dispatch(ctx, func(ctx context.Context) error {
			defer wg.Done()
			hasLogger = ctxlog.From(ctx) != nil
			return nil
		})

		waitGroup(t, &wg, time.Second)
		gt.True(t, hasLogger)
	})

	t.Run("Each dispatch preserves its own AuthContext", func(t *testing.T) {
		var wg sync.WaitGroup
		results := make(map[types.UserID]types.UserID)
		var mu sync.Mutex

		for i := 0; i < 5; i++ {
			id := types.UserID(fmt.Sprintf("user-%d", i))
			ctx := model.WithAuthContext(context.Background(), &model.AuthContext{Subject: id})

			wg.Add(1)
			async.Dispatch(ctx, func(ctx context.Context) error {
				defer wg.Done()
				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				results[id] = model.UserIDFromContext(ctx)
				mu.Unlock()
				return nil
			})
		}

		waitGroup(t, &wg, 2*time.Second)
		for i := 0; i < 5; i++ {
			id := types.UserID(fmt.Sprintf("user-%d", i))
			gt.Equal(t, results[id], id)
		}
	})
}
