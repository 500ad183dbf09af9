package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type GPURequest struct {
	Name         nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Manufacturer nullable.Value[string] `json:"manufacturer,omitzero"`
	MemoryType   nullable.Value[string] `json:"memoryType,omitzero"`
	MemorySize   nullable.Value[int]    `json:"memorySize,omitzero" validate:"omitempty,gte=0"`
	MemoryBus    nullable.Value[int]    `json:"memoryBus,omitzero" validate:"omitempty,gte=0"`
	CoreClock    nullable.Value[int]    `json:"coreClock,omitzero" validate:"omitempty,gte=0"`
	BoostClock   nullable.Value[int]    `json:"boostClock,omitzero" validate:"omitempty,gte=0"`
	TDP          nullable.Value[int]    `json:"tdp,omitzero" validate:"omitempty,gte=0"`
	Length       nullable.Value[int]    `json:"length,omitzero" validate:"omitempty,gte=0"`
}

type GPUResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Manufacturer NamedRef `json:"manufacturer"`
	MemoryType   NamedRef `json:"memoryType"`
	MemorySize   int      `json:"memorySize"`
	MemoryBus    int      `json:"memoryBus"`
	CoreClock    int      `json:"coreClock"`
	BoostClock   int      `json:"boostClock"`
	TDP          int      `json:"tdp"`
	Length       int      `json:"length"`
}

func (g GPUResponse) ResourceID() string { return g.ID }

var GPUResource = &Resource[model.GPU, GPURequest, GPUResponse]{
	Kind:  model.KindGPU,
	Table: store.GPUs,
	Fields: []Field[model.GPU, GPURequest]{
		nameField(
			func(d *GPURequest) *nullable.Value[string] { return &d.Name },
			func(e *model.GPU) *string { return &e.Name }),
		refField("manufacturer", model.KindManufacturer,
			func(d *GPURequest) *nullable.Value[string] { return &d.Manufacturer },
			func(e *model.GPU) *string { return &e.ManufacturerID }),
		refField("memoryType", model.KindVideoMemoryType,
			func(d *GPURequest) *nullable.Value[string] { return &d.MemoryType },
			func(e *model.GPU) *string { return &e.MemoryTypeID }),
		intField("memorySize",
			func(d *GPURequest) *nullable.Value[int] { return &d.MemorySize },
			func(e *model.GPU) *int { return &e.MemorySize }),
		intField("memoryBus",
			func(d *GPURequest) *nullable.Value[int] { return &d.MemoryBus },
			func(e *model.GPU) *int { return &e.MemoryBus }),
		intField("coreClock",
			func(d *GPURequest) *nullable.Value[int] { return &d.CoreClock },
			func(e *model.GPU) *int { return &e.CoreClock }),
		intField("boostClock",
			func(d *GPURequest) *nullable.Value[int] { return &d.BoostClock },
			func(e *model.GPU) *int { return &e.BoostClock }),
		intField("tdp",
			func(d *GPURequest) *nullable.Value[int] { return &d.TDP },
			func(e *model.GPU) *int { return &e.TDP }),
		intField("length",
			func(d *GPURequest) *nullable.Value[int] { return &d.Length },
			func(e *model.GPU) *int { return &e.Length }),
	},
	Key: []KeyPart[model.GPU]{
		column("name", "name", "name", func(e *model.GPU) any { return e.Name }),
		column("memorySize", "memory size", "memory_size", func(e *model.GPU) any { return e.MemorySize }),
		namedColumn("memoryType", "memory type", "memory_type_id", model.KindVideoMemoryType,
			func(e *model.GPU) string { return e.MemoryTypeID }),
	},
	View: func(ctx context.Context, r *Resolver, e *model.GPU) (GPUResponse, error) {
		manufacturer, err := r.Named(ctx, model.KindManufacturer, e.ManufacturerID)
		if err != nil {
			return GPUResponse{}, err
		}
		memoryType, err := r.Named(ctx, model.KindVideoMemoryType, e.MemoryTypeID)
		if err != nil {
			return GPUResponse{}, err
		}
		return GPUResponse{
			ID:           e.ID,
			Name:         e.Name,
			Manufacturer: manufacturer,
			MemoryType:   memoryType,
			MemorySize:   e.MemorySize,
			MemoryBus:    e.MemoryBus,
			CoreClock:    e.CoreClock,
			BoostClock:   e.BoostClock,
			TDP:          e.TDP,
			Length:       e.Length,
		}, nil
	},
}
