// Package storetest holds the compliance suite shared by every store driver.
package storetest

import (
	"context"
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

// Run exercises the generic repos against a store with the catalog schema in place.
// makeStore should return an isolated store; names are randomized so shared databases work too.
func Run(t *testing.T, makeStore func(t *testing.T) *store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	vendors := store.NewRepo(s, store.DictionaryTable(model.KindVendor))
	sockets := store.NewRepo(s, store.DictionaryTable(model.KindSocket))
	ramTypes := store.NewRepo(s, store.DictionaryTable(model.KindRAMType))

	// Dictionaries
	intel := &model.Dictionary{Name: "Intel-" + suffix}
	require.NoError(t, vendors.Insert(ctx, intel))
	require.NotEmpty(t, intel.ID)

	got, err := vendors.Get(ctx, intel.ID)
	require.NoError(t, err)
	assert.Equal(t, intel.Name, got.Name)

	_, err = vendors.Get(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, model.ErrNotFound))

	ok, err := vendors.Exists(ctx, intel.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	dup, err := vendors.ExistsByKey(ctx, sq.Eq{"name": intel.Name}, "")
	require.NoError(t, err)
	assert.True(t, dup)
	self, err := vendors.ExistsByKey(ctx, sq.Eq{"name": intel.Name}, intel.ID)
	require.NoError(t, err)
	assert.False(t, self, "own row is excluded")

	intel.Name = "Intel Corp-" + suffix
	require.NoError(t, vendors.Update(ctx, intel))
	got, err = vendors.Get(ctx, intel.ID)
	require.NoError(t, err)
	assert.Equal(t, intel.Name, got.Name)

	assert.ErrorIs(t, vendors.Update(ctx, &model.Dictionary{ID: uuid.NewString(), Name: "ghost"}), model.ErrNotFound)

	// Paging
	for _, name := range []string{"c", "a", "b"} {
		require.NoError(t, sockets.Insert(ctx, &model.Dictionary{Name: name + "-" + suffix}))
	}
	col, ok := store.DictionaryTable(model.KindSocket).SortColumn("name")
	require.True(t, ok)
	page, total, err := sockets.Page(ctx, store.PageRequest{Offset: 0, Limit: 2, Column: col, Desc: true})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 3)
	assert.Len(t, page, 2)
	assert.GreaterOrEqual(t, page[0].Name, page[1].Name)

	all, err := sockets.List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(all), 3)

	// Components with owned child rows
	lga := &model.Dictionary{Name: "LGA1700-" + suffix}
	require.NoError(t, sockets.Insert(ctx, lga))
	ddr4 := &model.Dictionary{Name: "DDR4-" + suffix}
	ddr5 := &model.Dictionary{Name: "DDR5-" + suffix}
	require.NoError(t, ramTypes.Insert(ctx, ddr4))
	require.NoError(t, ramTypes.Insert(ctx, ddr5))

	cpu := &model.CPU{Name: "i5 12400F-" + suffix, VendorID: intel.ID, SocketID: lga.ID, Cores: 6, Threads: 12, BaseClock: 2500, BoostClock: 4400, TDP: 65}
	links := []model.CPURAMType{{RAMTypeID: ddr5.ID, MaxMemoryClock: 4800}, {RAMTypeID: ddr4.ID, MaxMemoryClock: 3200}}
	require.NoError(t, s.InTx(ctx, func(tx *store.Store) error {
		if err := store.NewRepo(tx, store.CPUs).Insert(ctx, cpu); err != nil {
			return err
		}
		return store.NewLinks(tx, store.CPURAMTypes).Replace(ctx, cpu.ID, links)
	}))

	cpuLinks := store.NewLinks(s, store.CPURAMTypes)
	gotLinks, err := cpuLinks.List(ctx, cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, links, gotLinks, "insertion order is kept")

	// Rollback leaves nothing behind
	rolled := &model.Dictionary{Name: "rolled-back-" + suffix}
	boom := errors.New("boom")
	err = s.InTx(ctx, func(tx *store.Store) error {
		if err := store.NewRepo(tx, store.DictionaryTable(model.KindVendor)).Insert(ctx, rolled); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	exists, err := vendors.ExistsByKey(ctx, sq.Eq{"name": rolled.Name}, "")
	require.NoError(t, err)
	assert.False(t, exists)

	// Delete cascades to owned children and is idempotent
	cpus := store.NewRepo(s, store.CPUs)
	require.NoError(t, cpus.Delete(ctx, cpu.ID))
	require.NoError(t, cpus.Delete(ctx, cpu.ID))
	gotLinks, err = cpuLinks.List(ctx, cpu.ID)
	require.NoError(t, err)
	assert.Empty(t, gotLinks)

	// Optional references round-trip as nil
	conn := &model.Dictionary{Name: "SATA 3-" + suffix}
	require.NoError(t, store.NewRepo(s, store.DictionaryTable(model.KindStorageConnector)).Insert(ctx, conn))
	hdd := &model.HDD{Name: "Barracuda-" + suffix, VendorID: intel.ID, ConnectorID: conn.ID, Capacity: 1024, SpindleSpeed: 7200, CacheSize: 64}
	hdds := store.NewRepo(s, store.HDDs)
	require.NoError(t, hdds.Insert(ctx, hdd))
	gotHDD, err := hdds.Get(ctx, hdd.ID)
	require.NoError(t, err)
	assert.Nil(t, gotHDD.PowerConnectorID)
	assert.Nil(t, gotHDD.FormFactorID)
	assert.Equal(t, hdd, gotHDD)

	// Constraint violations surface as model sentinels
	err = vendors.Insert(ctx, &model.Dictionary{Name: intel.Name})
	assert.ErrorIs(t, err, model.ErrDuplicateKey)
	twin := &model.Dictionary{Name: "AMD-" + suffix}
	require.NoError(t, vendors.Insert(ctx, twin))
	twin.Name = intel.Name
	assert.ErrorIs(t, vendors.Update(ctx, twin), model.ErrDuplicateKey)

	err = vendors.Delete(ctx, intel.ID)
	assert.ErrorIs(t, err, model.ErrReferenced)
	ok, err = vendors.Exists(ctx, intel.ID)
	require.NoError(t, err)
	assert.True(t, ok, "referenced row survives")
}
