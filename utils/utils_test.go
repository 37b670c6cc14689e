package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitS3URI(t *testing.T) {
	bucket, prefix, ok := SplitS3URI("s3://scripts/blog/v1/")
	require.True(t, ok)
	require.Equal(t, "scripts", bucket)
	require.Equal(t, "blog/v1", prefix)

	bucket, prefix, ok = SplitS3URI("s3://scripts")
	require.True(t, ok)
	require.Equal(t, "scripts", bucket)
	require.Equal(t, "", prefix)

	_, _, ok = SplitS3URI("/tmp/out")
	require.False(t, ok)

	_, _, ok = SplitS3URI("s3:///nobucket")
	require.False(t, ok)
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	t.Setenv("SEED_TEST_INT", "")
	require.Equal(t, int64(500), GetEnvOrDefaultInt("SEED_TEST_INT", 500))

	t.Setenv("SEED_TEST_INT", "1200")
	require.Equal(t, int64(1200), GetEnvOrDefaultInt("SEED_TEST_INT", 500))
}

func TestDeref(t *testing.T) {
	require.Equal(t, "application/sql", Deref(Ptr("application/sql"), "text/plain"))
	require.Equal(t, "text/plain", Deref[string](nil, "text/plain"))
	require.Equal(t, int64(0), Deref(Ptr(int64(0)), 5))
}
