package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_Contract(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := OpenRedis(ctx, url)
	require.NoError(t, err)
	s.namespace = "chronosync-test-" + uuid.NewString()
	defer s.Close(ctx)

	runStoreContract(t, s, "docs")
}

func TestMongoStore_Contract(t *testing.T) {
	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := OpenMongo(ctx, url, "chronosync_test")
	require.NoError(t, err)
	coll := "docs_" + uuid.NewString()
	defer func() {
		_ = s.db.Collection(coll).Drop(ctx)
		_ = s.Close(ctx)
	}()

	runStoreContract(t, s, coll)
}

func TestEscapeGlob(t *testing.T) {
	require.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
}
