package youtube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchClientWithoutCredentials(t *testing.T) {
	client, err := NewSearchClient(context.Background(), &Config{})

	require.NoError(t, err)
	require.NotNil(t, client)

	videos := client.Search(context.Background(), "golang tutorial", 4)
	assert.Empty(t, videos)
	assert.NotNil(t, videos)
}

func TestSearchWithoutServiceReturnsEmpty(t *testing.T) {
	client := &SearchClient{}

	videos := client.Search(context.Background(), "golang tutorial", 4)

	assert.Empty(t, videos)
	assert.NotNil(t, videos)
}
