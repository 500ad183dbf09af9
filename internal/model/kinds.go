package model

// Kind identifies a catalog resource type.
type Kind int

const (
	KindVendor Kind = iota + 1
	KindSocket
	KindFanSize
	KindFanPowerConnector
	KindManufacturer
	KindRAMType
	KindStorageConnector
	KindStoragePowerConnector
	KindExpansionBayFormat
	KindVideoMemoryType
	KindDesign
	KindCPU
	KindGPU
	KindCooler
	KindFan
	KindHDD
	KindSSD
	KindRAMModule
)

type kindInfo struct {
	display string
	path    string
}

var kinds = map[Kind]kindInfo{
	KindVendor:                {"Vendor", "vendors"},
	KindSocket:                {"Socket", "sockets"},
	KindFanSize:               {"Fan size", "fan-sizes"},
	KindFanPowerConnector:     {"Fan power connector", "fan-power-connectors"},
	KindManufacturer:          {"Manufacturer", "manufacturers"},
	KindRAMType:               {"RAM type", "ram-types"},
	KindStorageConnector:      {"Storage connector", "storage-connectors"},
	KindStoragePowerConnector: {"Storage power connector", "storage-power-connectors"},
	KindExpansionBayFormat:    {"Expansion bay format", "expansion-bay-formats"},
	KindVideoMemoryType:       {"Video memory type", "video-memory-types"},
	KindDesign:                {"Design", "designs"},
	KindCPU:                   {"CPU", "cpus"},
	KindGPU:                   {"GPU", "gpus"},
	KindCooler:                {"Cooler", "coolers"},
	KindFan:                   {"Fan", "fans"},
	KindHDD:                   {"HDD", "hdds"},
	KindSSD:                   {"SSD", "ssds"},
	KindRAMModule:             {"RAM module", "ram-modules"},
}

// String returns the display name used in client-facing messages.
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.display
	}
	return "Resource"
}

// Path returns the URL path segment under /api/v1.
func (k Kind) Path() string { return kinds[k].path }

// NamedDictionaries lists the dictionary kinds whose rows are {id, name}.
func NamedDictionaries() []Kind {
	return []Kind{
		KindVendor,
		KindSocket,
		KindFanPowerConnector,
		KindManufacturer,
		KindRAMType,
		KindStorageConnector,
		KindStoragePowerConnector,
		KindExpansionBayFormat,
		KindVideoMemoryType,
		KindDesign,
	}
}

// Components lists the hardware component kinds in the order they can be created.
func Components() []Kind {
	return []Kind{KindCPU, KindGPU, KindCooler, KindFan, KindHDD, KindSSD, KindRAMModule}
}

// KindFromPath maps a URL path segment such as "ram-modules" back to its Kind.
func KindFromPath(path string) (Kind, bool) {
	for k, info := range kinds {
		if info.path == path {
			return k, true
		}
	}
	return 0, false
}
