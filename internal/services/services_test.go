package services

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/NH-Portal/portal-service/internal/cache"
	"github.com/NH-Portal/portal-service/internal/events"
	"github.com/NH-Portal/portal-service/internal/identity"
	redisstore "github.com/NH-Portal/portal-service/internal/recordstore/redis"
	"github.com/NH-Portal/portal-service/internal/repositories/store"
	"github.com/NH-Portal/portal-service/internal/session"
	"github.com/NH-Portal/portal-service/internal/validator"
)

const testSessionTTL = time.Hour

type testEnv struct {
	deps      Dependencies
	redis     *miniredis.Miniredis
	publisher *events.MockEventPublisher
	identity  *identity.MockClient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	publisher := events.NewMockEventPublisher(logger)
	identityClient := identity.NewMockClient()

	deps := Dependencies{
		Repo:      store.NewRepository(redisstore.NewStore(client)),
		Sessions:  session.NewStore(cache.NewCacheHelper(client, "session:"), testSessionTTL),
		Identity:  identityClient,
		Publisher: publisher,
		Logger:    logger,
		Validator: validator.New(),
	}

	return &testEnv{
		deps:      deps,
		redis:     mr,
		publisher: publisher,
		identity:  identityClient,
	}
}
