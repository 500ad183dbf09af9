package model

// Dictionary is a shared reference row with a unique name (vendor, socket, RAM type, ...).
type Dictionary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (d Dictionary) ResourceID() string { return d.ID }

// FanSize is the only dictionary with a composite natural key.
type FanSize struct {
	ID     string `json:"id"`
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (f FanSize) ResourceID() string { return f.ID }

// CPU references its vendor and socket by id and owns its RAM type associations.
type CPU struct {
	ID         string
	Name       string
	VendorID   string
	SocketID   string
	Cores      int
	Threads    int
	BaseClock  int
	BoostClock int
	TDP        int
	RAMTypes   []CPURAMType
}

// CPURAMType is the CPU-owned join row carrying the maximum supported memory clock.
type CPURAMType struct {
	RAMTypeID      string
	MaxMemoryClock int
}

type GPU struct {
	ID             string
	Name           string
	ManufacturerID string
	MemoryTypeID   string
	MemorySize     int
	MemoryBus      int
	CoreClock      int
	BoostClock     int
	TDP            int
	Length         int
}

// Cooler owns the set of sockets it fits.
type Cooler struct {
	ID        string
	Name      string
	VendorID  string
	Height    int
	MaxTDP    int
	FanCount  int
	SocketIDs []string
}

type Fan struct {
	ID               string
	Name             string
	VendorID         string
	FanSizeID        string
	PowerConnectorID string
	MinRPM           int
	MaxRPM           int
	Airflow          int
	NoiseLevel       int
}

type HDD struct {
	ID               string
	Name             string
	VendorID         string
	ConnectorID      string
	PowerConnectorID *string
	FormFactorID     *string
	Capacity         int
	SpindleSpeed     int
	CacheSize        int
}

type SSD struct {
	ID               string
	Name             string
	VendorID         string
	ConnectorID      string
	PowerConnectorID *string
	FormFactorID     string
	Capacity         int
	ReadSpeed        int
	WriteSpeed       int
}

type RAMModule struct {
	ID       string
	Name     string
	VendorID string
	TypeID   string
	DesignID string
	Capacity int
	Clock    int
	Latency  int
	Modules  int
}
