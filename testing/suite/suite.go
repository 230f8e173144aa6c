package suite

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	containerTTL = 120 // seconds
	startTimeout = 120 * time.Second
)

const (
	redisPort       = "6379/tcp"
	redisImage      = "redis"
	defaultRedisTag = "alpine"

	// REDIS_TEST_TAG overrides the image tag the suite starts.
	redisTagEnv = "REDIS_TEST_TAG"
)

// Suite bundles what the storage-backed tests need: a clean Redis, a
// logger that writes through t, and a key prefix unique to the test.
type Suite struct {
	*testing.T
	Logger zerolog.Logger

	Storage   *redis.Client
	KeyPrefix string
}

// New - starts a throwaway Redis container for t and returns a client for it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	client := startRedis(ctx, t)

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	return ctx, &Suite{
		T:         t,
		Logger:    newLogger(t),
		Storage:   client,
		KeyPrefix: keyPrefix(t.Name()),
	}
}

// Keys - every stored key under the suite prefix.
func (that *Suite) Keys(ctx context.Context) []string {
	that.Helper()

	keys, err := that.Storage.Keys(ctx, that.KeyPrefix+":*").Result()
	if err != nil {
		that.Fatalf("could not list keys: %v", err)
	}

	return keys
}

func newLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).
		Level(zerolog.InfoLevel).
		With().Timestamp().Str("test", t.Name()).
		Logger()
}

func startRedis(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = startTimeout

	tag := os.Getenv(redisTagEnv)
	if tag == "" {
		tag = defaultRedisTag
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        tag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis %s: %v", tag, err)
	}

	purge := func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	}

	// docker kills the container even if cleanup never runs
	_ = resource.Expire(containerTTL)

	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort(redisPort)})

	// redis inside the container accepts connections a little after start
	if err = pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		_ = client.Close()
		purge()
		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()
		purge()
	})

	return client
}

// keyPrefix turns a test name like "TestX/Sub_case" into "testx-sub_case".
func keyPrefix(name string) string {
	return strings.ToLower(strings.NewReplacer("/", "-", " ", "_", ":", "_").Replace(name))
}
