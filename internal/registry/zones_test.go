package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entsoe-collector/internal/storage/memory"
)

func TestBuiltinZones_Consistent(t *testing.T) {
	zones := BuiltinZones()
	require.NotEmpty(t, zones)

	seenEntities := make(map[int64]bool)
	seenCodes := make(map[string]bool)

	for _, zone := range zones {
		assert.False(t, seenEntities[zone.EntityID], "duplicate entity id %d", zone.EntityID)
		assert.False(t, seenCodes[zone.DomainCode], "duplicate domain code %s", zone.DomainCode)
		seenEntities[zone.EntityID] = true
		seenCodes[zone.DomainCode] = true

		assert.Len(t, zone.DomainCode, 16, "EIC codes are 16 characters: %s", zone.DomainCode)
		assert.NotEmpty(t, zone.ZoneName)

		loc, err := zone.Location()
		require.NoError(t, err, "zone %s", zone.ZoneName)
		assert.NotNil(t, loc)
	}
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.NewZoneMappingStore()

	require.NoError(t, Seed(ctx, store))

	mappings, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, len(BuiltinZones()))

	// Seeding twice is idempotent.
	require.NoError(t, Seed(ctx, store))

	mappings, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, mappings, len(BuiltinZones()))

	got, err := store.GetByDomainCode(ctx, "10YRO-TEL------P")
	require.NoError(t, err)
	assert.Equal(t, "Romania", got.ZoneName)
	assert.Equal(t, "Europe/Bucharest", got.Timezone)
}

func TestSeed_PreservesOperatorEdits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewZoneMappingStore()

	require.NoError(t, Seed(ctx, store))

	// An operator corrects a built-in mapping.
	edited, err := store.GetByEntityID(ctx, 2)
	require.NoError(t, err)
	edited.Timezone = "Europe/Warsaw"
	edited.ZoneName = "Ukraine IPS (edited)"
	require.NoError(t, store.Upsert(ctx, edited))

	// Re-seeding on the next startup must not clobber the edit.
	require.NoError(t, Seed(ctx, store))

	got, err := store.GetByEntityID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Warsaw", got.Timezone)
	assert.Equal(t, "Ukraine IPS (edited)", got.ZoneName)
}
