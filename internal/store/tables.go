package store

import "github.com/pcparts/catalog/internal/model"

var dictionaryTableNames = map[model.Kind]string{
	model.KindVendor:                "vendors",
	model.KindSocket:                "sockets",
	model.KindFanPowerConnector:     "fan_power_connectors",
	model.KindManufacturer:          "manufacturers",
	model.KindRAMType:               "ram_types",
	model.KindStorageConnector:      "storage_connectors",
	model.KindStoragePowerConnector: "storage_power_connectors",
	model.KindExpansionBayFormat:    "expansion_bay_formats",
	model.KindVideoMemoryType:       "video_memory_types",
	model.KindDesign:                "designs",
}

var dictionaryTables = func() map[model.Kind]*Table[model.Dictionary] {
	out := make(map[model.Kind]*Table[model.Dictionary], len(dictionaryTableNames))
	for kind, name := range dictionaryTableNames {
		out[kind] = &Table[model.Dictionary]{
			Name:    name,
			Columns: []string{"name"},
			Values:  func(d *model.Dictionary) []any { return []any{d.Name} },
			Dest:    func(d *model.Dictionary) []any { return []any{&d.ID, &d.Name} },
			ID:      func(d *model.Dictionary) *string { return &d.ID },
			Sorts:   map[string]string{"id": "id", "name": "name"},

			DefaultSort: "name",
		}
	}
	return out
}()

// DictionaryTable returns the table of a named dictionary kind, or nil for other kinds.
func DictionaryTable(kind model.Kind) *Table[model.Dictionary] {
	return dictionaryTables[kind]
}

var FanSizes = &Table[model.FanSize]{
	Name:    "fan_sizes",
	Columns: []string{"length", "width", "height"},
	Values:  func(f *model.FanSize) []any { return []any{f.Length, f.Width, f.Height} },
	Dest:    func(f *model.FanSize) []any { return []any{&f.ID, &f.Length, &f.Width, &f.Height} },
	ID:      func(f *model.FanSize) *string { return &f.ID },
	Sorts: map[string]string{
		"id":     "id",
		"length": "length",
		"width":  "width",
		"height": "height",
	},
	DefaultSort: "length",
}

var CPUs = &Table[model.CPU]{
	Name:    "cpus",
	Columns: []string{"name", "vendor_id", "socket_id", "cores", "threads", "base_clock", "boost_clock", "tdp"},
	Values: func(c *model.CPU) []any {
		return []any{c.Name, c.VendorID, c.SocketID, c.Cores, c.Threads, c.BaseClock, c.BoostClock, c.TDP}
	},
	Dest: func(c *model.CPU) []any {
		return []any{&c.ID, &c.Name, &c.VendorID, &c.SocketID, &c.Cores, &c.Threads, &c.BaseClock, &c.BoostClock, &c.TDP}
	},
	ID: func(c *model.CPU) *string { return &c.ID },
	Sorts: map[string]string{
		"id":         "id",
		"name":       "name",
		"cores":      "cores",
		"threads":    "threads",
		"baseClock":  "base_clock",
		"boostClock": "boost_clock",
		"tdp":        "tdp",
	},
	DefaultSort: "name",
}

var CPURAMTypes = &LinkTable[model.CPURAMType]{
	Name:    "cpu_ram_types",
	Parent:  "cpu_id",
	Columns: []string{"ram_type_id", "max_memory_clock"},
	Values:  func(l *model.CPURAMType) []any { return []any{l.RAMTypeID, l.MaxMemoryClock} },
	Dest:    func(l *model.CPURAMType) []any { return []any{&l.RAMTypeID, &l.MaxMemoryClock} },
}

var GPUs = &Table[model.GPU]{
	Name: "gpus",
	Columns: []string{
		"name", "manufacturer_id", "memory_type_id", "memory_size", "memory_bus",
		"core_clock", "boost_clock", "tdp", "length",
	},
	Values: func(g *model.GPU) []any {
		return []any{g.Name, g.ManufacturerID, g.MemoryTypeID, g.MemorySize, g.MemoryBus, g.CoreClock, g.BoostClock, g.TDP, g.Length}
	},
	Dest: func(g *model.GPU) []any {
		return []any{&g.ID, &g.Name, &g.ManufacturerID, &g.MemoryTypeID, &g.MemorySize, &g.MemoryBus, &g.CoreClock, &g.BoostClock, &g.TDP, &g.Length}
	},
	ID: func(g *model.GPU) *string { return &g.ID },
	Sorts: map[string]string{
		"id":         "id",
		"name":       "name",
		"memorySize": "memory_size",
		"memoryBus":  "memory_bus",
		"coreClock":  "core_clock",
		"boostClock": "boost_clock",
		"tdp":        "tdp",
		"length":     "length",
	},
	DefaultSort: "name",
}

var Coolers = &Table[model.Cooler]{
	Name:    "coolers",
	Columns: []string{"name", "vendor_id", "height", "max_tdp", "fan_count"},
	Values: func(c *model.Cooler) []any {
		return []any{c.Name, c.VendorID, c.Height, c.MaxTDP, c.FanCount}
	},
	Dest: func(c *model.Cooler) []any {
		return []any{&c.ID, &c.Name, &c.VendorID, &c.Height, &c.MaxTDP, &c.FanCount}
	},
	ID: func(c *model.Cooler) *string { return &c.ID },
	Sorts: map[string]string{
		"id":       "id",
		"name":     "name",
		"height":   "height",
		"maxTdp":   "max_tdp",
		"fanCount": "fan_count",
	},
	DefaultSort: "name",
}

var CoolerSockets = &LinkTable[string]{
	Name:    "cooler_sockets",
	Parent:  "cooler_id",
	Columns: []string{"socket_id"},
	Values:  func(s *string) []any { return []any{*s} },
	Dest:    func(s *string) []any { return []any{s} },
}

var Fans = &Table[model.Fan]{
	Name: "fans",
	Columns: []string{
		"name", "vendor_id", "fan_size_id", "power_connector_id",
		"min_rpm", "max_rpm", "airflow", "noise_level",
	},
	Values: func(f *model.Fan) []any {
		return []any{f.Name, f.VendorID, f.FanSizeID, f.PowerConnectorID, f.MinRPM, f.MaxRPM, f.Airflow, f.NoiseLevel}
	},
	Dest: func(f *model.Fan) []any {
		return []any{&f.ID, &f.Name, &f.VendorID, &f.FanSizeID, &f.PowerConnectorID, &f.MinRPM, &f.MaxRPM, &f.Airflow, &f.NoiseLevel}
	},
	ID: func(f *model.Fan) *string { return &f.ID },
	Sorts: map[string]string{
		"id":         "id",
		"name":       "name",
		"minRpm":     "min_rpm",
		"maxRpm":     "max_rpm",
		"airflow":    "airflow",
		"noiseLevel": "noise_level",
	},
	DefaultSort: "name",
}

var HDDs = &Table[model.HDD]{
	Name: "hdds",
	Columns: []string{
		"name", "vendor_id", "connector_id", "power_connector_id", "form_factor_id",
		"capacity", "spindle_speed", "cache_size",
	},
	Values: func(h *model.HDD) []any {
		return []any{h.Name, h.VendorID, h.ConnectorID, h.PowerConnectorID, h.FormFactorID, h.Capacity, h.SpindleSpeed, h.CacheSize}
	},
	Dest: func(h *model.HDD) []any {
		return []any{&h.ID, &h.Name, &h.VendorID, &h.ConnectorID, &h.PowerConnectorID, &h.FormFactorID, &h.Capacity, &h.SpindleSpeed, &h.CacheSize}
	},
	ID: func(h *model.HDD) *string { return &h.ID },
	Sorts: map[string]string{
		"id":           "id",
		"name":         "name",
		"capacity":     "capacity",
		"spindleSpeed": "spindle_speed",
		"cacheSize":    "cache_size",
	},
	DefaultSort: "name",
}

var SSDs = &Table[model.SSD]{
	Name: "ssds",
	Columns: []string{
		"name", "vendor_id", "connector_id", "power_connector_id", "form_factor_id",
		"capacity", "read_speed", "write_speed",
	},
	Values: func(s *model.SSD) []any {
		return []any{s.Name, s.VendorID, s.ConnectorID, s.PowerConnectorID, s.FormFactorID, s.Capacity, s.ReadSpeed, s.WriteSpeed}
	},
	Dest: func(s *model.SSD) []any {
		return []any{&s.ID, &s.Name, &s.VendorID, &s.ConnectorID, &s.PowerConnectorID, &s.FormFactorID, &s.Capacity, &s.ReadSpeed, &s.WriteSpeed}
	},
	ID: func(s *model.SSD) *string { return &s.ID },
	Sorts: map[string]string{
		"id":         "id",
		"name":       "name",
		"capacity":   "capacity",
		"readSpeed":  "read_speed",
		"writeSpeed": "write_speed",
	},
	DefaultSort: "name",
}

var RAMModules = &Table[model.RAMModule]{
	Name: "ram_modules",
	Columns: []string{
		"name", "vendor_id", "type_id", "design_id",
		"capacity", "clock", "latency", "modules",
	},
	Values: func(r *model.RAMModule) []any {
		return []any{r.Name, r.VendorID, r.TypeID, r.DesignID, r.Capacity, r.Clock, r.Latency, r.Modules}
	},
	Dest: func(r *model.RAMModule) []any {
		return []any{&r.ID, &r.Name, &r.VendorID, &r.TypeID, &r.DesignID, &r.Capacity, &r.Clock, &r.Latency, &r.Modules}
	},
	ID: func(r *model.RAMModule) *string { return &r.ID },
	Sorts: map[string]string{
		"id":       "id",
		"name":     "name",
		"capacity": "capacity",
		"clock":    "clock",
		"latency":  "latency",
		"modules":  "modules",
	},
	DefaultSort: "name",
}
