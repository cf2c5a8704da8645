package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := Default()
	require.Len(t, catalog, 4)

	first, ok := catalog.Get(0)
	require.True(t, ok)
	assert.Equal(t, int64(10), first.Coins)
	require.NotNil(t, first.DurationHours)
	assert.Equal(t, 24, *first.DurationHours)

	last, ok := catalog.Get(3)
	require.True(t, ok)
	assert.Equal(t, int64(300), last.Coins)
	assert.Nil(t, last.DurationHours)
}

func TestCatalogBounds(t *testing.T) {
	catalog := Default()

	_, ok := catalog.Get(-1)
	assert.False(t, ok)

	_, ok = catalog.Get(len(catalog))
	assert.False(t, ok)
}
