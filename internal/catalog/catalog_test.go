package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
	"github.com/pcparts/catalog/internal/store/sqlite"
)

func newTestCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	return New(st, zerolog.Nop()), st
}

func mustDict(t *testing.T, c *Catalog, kind model.Kind, name string) string {
	t.Helper()
	d, err := c.Dictionary(kind).Create(context.Background(), &DictionaryRequest{Name: nullable.Of(name)})
	require.NoError(t, err)
	return d.ID
}

func violationOf(t *testing.T, err error) model.Violation {
	t.Helper()
	var v model.Violator
	require.True(t, errors.As(err, &v), "expected a domain error, got %v", err)
	return v.Violation()
}

type storageFixture struct {
	seagate, toshiba string
	sata3, sata2     string
	molex            string
	bay35            string
}

func seedStorage(t *testing.T, c *Catalog) storageFixture {
	return storageFixture{
		seagate: mustDict(t, c, model.KindVendor, "Seagate"),
		toshiba: mustDict(t, c, model.KindVendor, "Toshiba"),
		sata3:   mustDict(t, c, model.KindStorageConnector, "SATA 3"),
		sata2:   mustDict(t, c, model.KindStorageConnector, "SATA 2"),
		molex:   mustDict(t, c, model.KindStoragePowerConnector, "Molex"),
		bay35:   mustDict(t, c, model.KindExpansionBayFormat, "3.5"),
	}
}

func barracuda(vendor, connector string) *HDDRequest {
	return &HDDRequest{
		Name:         nullable.Of("Barracuda"),
		Vendor:       nullable.Of(vendor),
		Connector:    nullable.Of(connector),
		Capacity:     nullable.Of(1024),
		SpindleSpeed: nullable.Of(7200),
		CacheSize:    nullable.Of(64),
	}
}

func TestHDD_DuplicateNaturalKey(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx := seedStorage(t, c)

	created, err := c.HDDs.Create(ctx, barracuda(fx.seagate, fx.sata3))
	require.NoError(t, err)
	assert.Equal(t, "Seagate", created.Vendor.Name)
	assert.Equal(t, "SATA 3", created.Connector.Name)
	assert.Nil(t, created.PowerConnector)
	assert.Nil(t, created.FormFactor)

	_, err = c.HDDs.Create(ctx, barracuda(fx.toshiba, fx.sata2))
	require.Error(t, err)
	assert.True(t, model.IsDuplicateError(err))
	v := violationOf(t, err)
	assert.Equal(t, []string{"name", "capacity", "spindleSpeed", "cacheSize"}, v.ParamNames)
	assert.Equal(t, "HDD with name <Barracuda> capacity <1024> spindle speed <7200> and cache size <64> already exists!", v.Message)

	all, err := c.HDDs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestHDD_RequiredBeforeExistenceAndOrder(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx := seedStorage(t, c)

	tests := []struct {
		name      string
		req       *HDDRequest
		wantParam []string
		wantMsg   string
	}{
		{
			name:      "explicit null vendor",
			req:       func() *HDDRequest { r := barracuda(fx.seagate, fx.sata3); r.Vendor = nullable.Null[string](); return r }(),
			wantParam: []string{"vendor"},
			wantMsg:   "Invalid param value!",
		},
		{
			name:      "absent connector",
			req:       func() *HDDRequest { r := barracuda(fx.seagate, fx.sata3); r.Connector = nullable.Value[string]{}; return r }(),
			wantParam: []string{"connector"},
			wantMsg:   "Invalid param value!",
		},
		{
			name:      "null connector wins over unknown vendor",
			req:       func() *HDDRequest { r := barracuda("nope", fx.sata3); r.Connector = nullable.Null[string](); return r }(),
			wantParam: []string{"connector"},
			wantMsg:   "Invalid param value!",
		},
		{
			name:      "vendor checked before connector",
			req:       barracuda("v-missing", "c-missing"),
			wantParam: []string{"id"},
			wantMsg:   "Vendor with ID = <v-missing> not found!",
		},
		{
			name:      "unknown optional power connector",
			req:       func() *HDDRequest { r := barracuda(fx.seagate, fx.sata3); r.PowerConnector = nullable.Of("p-missing"); return r }(),
			wantParam: []string{"id"},
			wantMsg:   "Storage power connector with ID = <p-missing> not found!",
		},
		{
			name:      "blank name",
			req:       func() *HDDRequest { r := barracuda(fx.seagate, fx.sata3); r.Name = nullable.Of("  "); return r }(),
			wantParam: []string{"name"},
			wantMsg:   "Invalid param value!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.HDDs.Create(ctx, tt.req)
			v := violationOf(t, err)
			assert.Equal(t, tt.wantParam, v.ParamNames)
			assert.Equal(t, tt.wantMsg, v.Message)
		})
	}
}

func TestHDD_PatchPreservesAndPutResets(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx := seedStorage(t, c)

	req := barracuda(fx.seagate, fx.sata3)
	req.PowerConnector = nullable.Of(fx.molex)
	req.FormFactor = nullable.Of(fx.bay35)
	created, err := c.HDDs.Create(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, created.PowerConnector)
	assert.Equal(t, "Molex", created.PowerConnector.Name)

	patched, err := c.HDDs.Update(ctx, created.ID, &HDDRequest{Capacity: nullable.Of(2048)})
	require.NoError(t, err)
	assert.Equal(t, 2048, patched.Capacity)
	assert.Equal(t, created.Name, patched.Name)
	assert.Equal(t, created.Vendor, patched.Vendor)
	assert.Equal(t, created.PowerConnector, patched.PowerConnector)
	assert.Equal(t, created.FormFactor, patched.FormFactor)
	assert.Equal(t, created.SpindleSpeed, patched.SpindleSpeed)

	// explicit null clears an optional reference
	patched, err = c.HDDs.Update(ctx, created.ID, &HDDRequest{FormFactor: nullable.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, patched.FormFactor)
	assert.NotNil(t, patched.PowerConnector)

	// explicit null on a mandatory reference is rejected
	_, err = c.HDDs.Update(ctx, created.ID, &HDDRequest{Vendor: nullable.Null[string]()})
	assert.Equal(t, []string{"vendor"}, violationOf(t, err).ParamNames)

	replaced, err := c.HDDs.Replace(ctx, created.ID, barracuda(fx.toshiba, fx.sata2))
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID)
	assert.Equal(t, "Toshiba", replaced.Vendor.Name)
	assert.Equal(t, 1024, replaced.Capacity)
	assert.Nil(t, replaced.PowerConnector)
	assert.Nil(t, replaced.FormFactor)

	// the record does not collide with itself
	_, err = c.HDDs.Update(ctx, created.ID, &HDDRequest{Name: nullable.Of("Barracuda")})
	require.NoError(t, err)
}

func TestPathNotFound(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx := seedStorage(t, c)

	_, err := c.HDDs.Get(ctx, "missing")
	v := violationOf(t, err)
	assert.Empty(t, v.ParamNames)
	assert.Equal(t, "HDD with ID = <missing> not found!", v.Message)

	_, err = c.HDDs.Replace(ctx, "missing", barracuda(fx.seagate, fx.sata3))
	assert.True(t, model.IsNotFoundError(err))
	assert.Empty(t, violationOf(t, err).ParamNames)

	_, err = c.HDDs.Update(ctx, "missing", &HDDRequest{})
	assert.True(t, model.IsNotFoundError(err))
}

type cpuFixture struct {
	intel, lga1700 string
	ddr4, ddr5     string
}

func seedCPU(t *testing.T, c *Catalog) (cpuFixture, CPUResponse) {
	t.Helper()
	fx := cpuFixture{
		intel:   mustDict(t, c, model.KindVendor, "Intel"),
		lga1700: mustDict(t, c, model.KindSocket, "LGA1700"),
		ddr4:    mustDict(t, c, model.KindRAMType, "DDR4"),
		ddr5:    mustDict(t, c, model.KindRAMType, "DDR5"),
	}
	cpu, err := c.CPUs.Create(context.Background(), &CPURequest{
		Name:       nullable.Of("i5 12400F"),
		Vendor:     nullable.Of(fx.intel),
		Socket:     nullable.Of(fx.lga1700),
		Cores:      nullable.Of(6),
		Threads:    nullable.Of(12),
		BaseClock:  nullable.Of(2500),
		BoostClock: nullable.Of(4400),
		TDP:        nullable.Of(65),
		SupportedRAMTypes: nullable.Of([]CPURAMTypeRequest{
			{RAMType: fx.ddr4, MaxMemoryClock: 3200},
			{RAMType: fx.ddr5, MaxMemoryClock: 4800},
		}),
	})
	require.NoError(t, err)
	return fx, cpu
}

func TestCPU_PatchUnknownRAMTypeLeavesRecordUnchanged(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx, cpu := seedCPU(t, c)

	require.Len(t, cpu.SupportedRAMTypes, 2)
	assert.Equal(t, "DDR4", cpu.SupportedRAMTypes[0].RAMType.Name)
	assert.Equal(t, 3200, cpu.SupportedRAMTypes[0].MaxMemoryClock)
	assert.Equal(t, "DDR5", cpu.SupportedRAMTypes[1].RAMType.Name)

	_, err := c.CPUs.Update(ctx, cpu.ID, &CPURequest{
		Name: nullable.Of("i5 12400"),
		SupportedRAMTypes: nullable.Of([]CPURAMTypeRequest{
			{RAMType: fx.ddr4, MaxMemoryClock: 3200},
			{RAMType: "ddr6", MaxMemoryClock: 8000},
		}),
	})
	v := violationOf(t, err)
	assert.Equal(t, []string{"id"}, v.ParamNames)
	assert.Equal(t, "RAM type with ID = <ddr6> not found!", v.Message)

	got, err := c.CPUs.Get(ctx, cpu.ID)
	require.NoError(t, err)
	assert.Equal(t, cpu, got)
}

func TestCPU_SupportedRAMTypesShape(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx, cpu := seedCPU(t, c)

	_, err := c.CPUs.Update(ctx, cpu.ID, &CPURequest{SupportedRAMTypes: nullable.Of([]CPURAMTypeRequest{})})
	assert.Equal(t, []string{"supportedRamTypes"}, violationOf(t, err).ParamNames)

	_, err = c.CPUs.Update(ctx, cpu.ID, &CPURequest{SupportedRAMTypes: nullable.Of([]CPURAMTypeRequest{
		{RAMType: fx.ddr4, MaxMemoryClock: 3200},
		{RAMType: fx.ddr4, MaxMemoryClock: 2666},
	})})
	assert.Equal(t, []string{"supportedRamTypes"}, violationOf(t, err).ParamNames)

	updated, err := c.CPUs.Update(ctx, cpu.ID, &CPURequest{SupportedRAMTypes: nullable.Of([]CPURAMTypeRequest{
		{RAMType: fx.ddr5, MaxMemoryClock: 5600},
	})})
	require.NoError(t, err)
	require.Len(t, updated.SupportedRAMTypes, 1)
	assert.Equal(t, 5600, updated.SupportedRAMTypes[0].MaxMemoryClock)
	assert.Equal(t, cpu.Cores, updated.Cores)
}

func TestCPU_DeleteIsIdempotentAndCascades(t *testing.T) {
	c, st := newTestCatalog(t)
	ctx := context.Background()
	_, cpu := seedCPU(t, c)

	require.NoError(t, c.CPUs.Delete(ctx, cpu.ID))
	require.NoError(t, c.CPUs.Delete(ctx, cpu.ID))
	require.NoError(t, c.CPUs.Delete(ctx, "never-existed"))

	_, err := c.CPUs.Get(ctx, cpu.ID)
	assert.True(t, model.IsNotFoundError(err))

	links, err := store.NewLinks(st, store.CPURAMTypes).List(ctx, cpu.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestGPU_DuplicateShowsMemoryTypeName(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	nvidia := mustDict(t, c, model.KindManufacturer, "NVIDIA")
	gddr6 := mustDict(t, c, model.KindVideoMemoryType, "GDDR6")

	req := &GPURequest{
		Name:         nullable.Of("RTX 3060"),
		Manufacturer: nullable.Of(nvidia),
		MemoryType:   nullable.Of(gddr6),
		MemorySize:   nullable.Of(12),
	}
	_, err := c.GPUs.Create(ctx, req)
	require.NoError(t, err)

	_, err = c.GPUs.Create(ctx, req)
	v := violationOf(t, err)
	assert.Equal(t, []string{"name", "memorySize", "memoryType"}, v.ParamNames)
	assert.Equal(t, "GPU with name <RTX 3060> memory size <12> and memory type <GDDR6> already exists!", v.Message)

	req.MemorySize = nullable.Of(8)
	_, err = c.GPUs.Create(ctx, req)
	require.NoError(t, err)
}

func TestCooler_SupportedSockets(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	noctua := mustDict(t, c, model.KindVendor, "Noctua")
	am5 := mustDict(t, c, model.KindSocket, "AM5")
	lga := mustDict(t, c, model.KindSocket, "LGA1700")

	base := CoolerRequest{Name: nullable.Of("NH-D15"), Vendor: nullable.Of(noctua), Height: nullable.Of(165)}

	empty := base
	empty.SupportedSockets = nullable.Of([]string{})
	_, err := c.Coolers.Create(ctx, &empty)
	assert.Equal(t, []string{"supportedSockets"}, violationOf(t, err).ParamNames)

	dup := base
	dup.SupportedSockets = nullable.Of([]string{am5, am5})
	_, err = c.Coolers.Create(ctx, &dup)
	assert.Equal(t, []string{"supportedSockets"}, violationOf(t, err).ParamNames)

	unknown := base
	unknown.SupportedSockets = nullable.Of([]string{am5, "sTRX4"})
	_, err = c.Coolers.Create(ctx, &unknown)
	assert.Equal(t, "Socket with ID = <sTRX4> not found!", violationOf(t, err).Message)

	ok := base
	ok.SupportedSockets = nullable.Of([]string{lga, am5})
	cooler, err := c.Coolers.Create(ctx, &ok)
	require.NoError(t, err)
	require.Len(t, cooler.SupportedSockets, 2)
	assert.Equal(t, "LGA1700", cooler.SupportedSockets[0].Name)
	assert.Equal(t, "AM5", cooler.SupportedSockets[1].Name)

	_, err = c.Coolers.Create(ctx, &ok)
	assert.Equal(t, "Cooler with name <NH-D15> already exists!", violationOf(t, err).Message)
}

func TestFan_SizeReferenceAndKey(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	arctic := mustDict(t, c, model.KindVendor, "Arctic")
	pwm := mustDict(t, c, model.KindFanPowerConnector, "4-pin PWM")
	size, err := c.FanSizes.Create(ctx, &FanSizeRequest{Length: nullable.Of(120), Width: nullable.Of(120), Height: nullable.Of(25)})
	require.NoError(t, err)

	req := &FanRequest{
		Name:           nullable.Of("P12"),
		Vendor:         nullable.Of(arctic),
		FanSize:        nullable.Of("no-such-size"),
		PowerConnector: nullable.Of(pwm),
	}
	_, err = c.Fans.Create(ctx, req)
	assert.Equal(t, "Fan size with ID = <no-such-size> not found!", violationOf(t, err).Message)

	req.FanSize = nullable.Of(size.ID)
	fan, err := c.Fans.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, size, fan.FanSize)

	_, err = c.Fans.Create(ctx, req)
	v := violationOf(t, err)
	assert.Equal(t, []string{"name", "fanSize"}, v.ParamNames)
	assert.Equal(t, "Fan with name <P12> and size <120x120x25> already exists!", v.Message)

	_, err = c.FanSizes.Create(ctx, &FanSizeRequest{Length: nullable.Of(120), Width: nullable.Of(120), Height: nullable.Of(25)})
	assert.Equal(t, "Fan size with length <120> width <120> and height <25> already exists!", violationOf(t, err).Message)

	_, err = c.FanSizes.Create(ctx, &FanSizeRequest{Length: nullable.Of(140), Height: nullable.Of(25)})
	assert.Equal(t, []string{"width"}, violationOf(t, err).ParamNames)
}

func TestSSDAndRAMModule_Keys(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	samsung := mustDict(t, c, model.KindVendor, "Samsung")
	nvme := mustDict(t, c, model.KindStorageConnector, "NVMe")
	m2 := mustDict(t, c, model.KindExpansionBayFormat, "M.2 2280")

	ssd := &SSDRequest{Name: nullable.Of("970 EVO"), Vendor: nullable.Of(samsung), Connector: nullable.Of(nvme), Capacity: nullable.Of(500)}
	_, err := c.SSDs.Create(ctx, ssd)
	assert.Equal(t, []string{"formFactor"}, violationOf(t, err).ParamNames)

	ssd.FormFactor = nullable.Of(m2)
	created, err := c.SSDs.Create(ctx, ssd)
	require.NoError(t, err)
	assert.Nil(t, created.PowerConnector)
	assert.Equal(t, "M.2 2280", created.FormFactor.Name)

	_, err = c.SSDs.Create(ctx, ssd)
	assert.Equal(t, "SSD with name <970 EVO> and capacity <500> already exists!", violationOf(t, err).Message)

	kingston := mustDict(t, c, model.KindVendor, "Kingston")
	ddr4 := mustDict(t, c, model.KindRAMType, "DDR4")
	dimm := mustDict(t, c, model.KindDesign, "DIMM")
	ram := &RAMModuleRequest{
		Name:     nullable.Of("Fury Beast"),
		Vendor:   nullable.Of(kingston),
		Type:     nullable.Of(ddr4),
		Design:   nullable.Of(dimm),
		Capacity: nullable.Of(16),
		Clock:    nullable.Of(3200),
	}
	_, err = c.RAMModules.Create(ctx, ram)
	require.NoError(t, err)
	_, err = c.RAMModules.Create(ctx, ram)
	v := violationOf(t, err)
	assert.Equal(t, []string{"name", "capacity", "type", "design"}, v.ParamNames)
	assert.Equal(t, "RAM module with name <Fury Beast> capacity <16> type <DDR4> and design <DIMM> already exists!", v.Message)

	ram.Design = nullable.Of("so-dimm")
	_, err = c.RAMModules.Create(ctx, ram)
	assert.Equal(t, "Design with ID = <so-dimm> not found!", violationOf(t, err).Message)
}

func TestDictionary_CRUDAndPaging(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	vendors := c.Dictionary(model.KindVendor)

	for _, name := range []string{"Intel", "AMD", "Corsair", "Noctua", "Arctic"} {
		mustDict(t, c, model.KindVendor, name)
	}

	_, err := vendors.Create(ctx, &DictionaryRequest{Name: nullable.Of("AMD")})
	v := violationOf(t, err)
	assert.Equal(t, []string{"name"}, v.ParamNames)
	assert.Equal(t, "Vendor with name <AMD> already exists!", v.Message)

	page, err := vendors.Page(ctx, PageRequest{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "name,asc", page.Sort)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "AMD", page.Content[0].Name)
	assert.Equal(t, "Arctic", page.Content[1].Name)

	page, err = vendors.Page(ctx, PageRequest{Offset: 4, Limit: 2, Sort: "name", Desc: true})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "AMD", page.Content[0].Name)

	_, err = vendors.Page(ctx, PageRequest{Limit: 2, Sort: "color"})
	assert.Equal(t, []string{"sort"}, violationOf(t, err).ParamNames)

	all, err := vendors.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	renamed, err := vendors.Update(ctx, all[0].ID, &DictionaryRequest{Name: nullable.Of("Advanced Micro Devices")})
	require.NoError(t, err)
	assert.Equal(t, "Advanced Micro Devices", renamed.Name)

	_, err = vendors.Replace(ctx, all[0].ID, &DictionaryRequest{})
	assert.Equal(t, []string{"name"}, violationOf(t, err).ParamNames)
}

func TestView_RoundTripsScalarsAndNestsReferences(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	fx := seedStorage(t, c)

	req := barracuda(fx.seagate, fx.sata3)
	req.FormFactor = nullable.Of(fx.bay35)
	got, err := c.HDDs.Create(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, req.Name.OrZero(), got.Name)
	assert.Equal(t, req.Capacity.OrZero(), got.Capacity)
	assert.Equal(t, req.SpindleSpeed.OrZero(), got.SpindleSpeed)
	assert.Equal(t, req.CacheSize.OrZero(), got.CacheSize)
	assert.Equal(t, NamedRef{ID: fx.seagate, Name: "Seagate"}, got.Vendor)
	assert.Equal(t, NamedRef{ID: fx.sata3, Name: "SATA 3"}, got.Connector)
	require.NotNil(t, got.FormFactor)
	assert.Equal(t, fx.bay35, got.FormFactor.ID)
}

func TestDictionary_DeleteInUseIsRejected(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	noctua := mustDict(t, c, model.KindVendor, "Noctua")
	am5 := mustDict(t, c, model.KindSocket, "AM5")

	cooler, err := c.Coolers.Create(ctx, &CoolerRequest{
		Name:             nullable.Of("NH-D15"),
		Vendor:           nullable.Of(noctua),
		Height:           nullable.Of(165),
		SupportedSockets: nullable.Of([]string{am5}),
	})
	require.NoError(t, err)

	for _, ref := range []struct {
		kind model.Kind
		id   string
	}{{model.KindVendor, noctua}, {model.KindSocket, am5}} {
		err := c.Dictionary(ref.kind).Delete(ctx, ref.id)
		v := violationOf(t, err)
		assert.Equal(t, []string{"id"}, v.ParamNames)
		assert.Equal(t, "Invalid param value!", v.Message)
		assert.False(t, model.IsNotFoundError(err))

		_, err = c.Dictionary(ref.kind).Get(ctx, ref.id)
		assert.NoError(t, err, "%s is kept", ref.kind)
	}

	require.NoError(t, c.Coolers.Delete(ctx, cooler.ID))
	assert.NoError(t, c.Dictionary(model.KindSocket).Delete(ctx, am5))
	assert.NoError(t, c.Dictionary(model.KindVendor).Delete(ctx, noctua))
}

func TestCreate_ConcurrentSameKeyOnFileStore(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	c := New(st, zerolog.Nop())
	ctx := context.Background()

	const writers = 32
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Dictionary(model.KindVendor).Create(ctx, &DictionaryRequest{Name: nullable.Of("Intel")})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		require.True(t, model.IsDuplicateError(err), "unexpected error: %v", err)
		assert.Equal(t, "Vendor with name <Intel> already exists!", err.Error())
	}
	assert.Equal(t, 1, created)

	all, err := c.Dictionary(model.KindVendor).List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestKeyConflict(t *testing.T) {
	de := &model.DuplicateError{Kind: model.KindVendor, Params: []string{"name"}, Labels: []string{"name"}, Values: []string{"Intel"}}
	lost := fmt.Errorf("insert vendors: %w", fmt.Errorf("%w: %w", model.ErrDuplicateKey, errors.New("UNIQUE constraint failed: vendors.name")))
	other := errors.New("disk I/O error")

	assert.Equal(t, *de, keyConflict(lost, de))
	assert.Same(t, other, keyConflict(other, de))
	assert.Same(t, lost, keyConflict(lost, nil), "kinds without a natural key keep the store error")
	assert.Equal(t, "Vendor with name <Intel> already exists!", violationOf(t, keyConflict(lost, de)).Message)
}
