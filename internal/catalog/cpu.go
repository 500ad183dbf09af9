package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

// CPURAMTypeRequest pairs a supported RAM type with its maximum clock.
type CPURAMTypeRequest struct {
	RAMType        string `json:"ramType"`
	MaxMemoryClock int    `json:"maxMemoryClock"`
}

type CPURequest struct {
	Name              nullable.Value[string]              `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor            nullable.Value[string]              `json:"vendor,omitzero"`
	Socket            nullable.Value[string]              `json:"socket,omitzero"`
	Cores             nullable.Value[int]                 `json:"cores,omitzero" validate:"omitempty,gte=0"`
	Threads           nullable.Value[int]                 `json:"threads,omitzero" validate:"omitempty,gte=0"`
	BaseClock         nullable.Value[int]                 `json:"baseClock,omitzero" validate:"omitempty,gte=0"`
	BoostClock        nullable.Value[int]                 `json:"boostClock,omitzero" validate:"omitempty,gte=0"`
	TDP               nullable.Value[int]                 `json:"tdp,omitzero" validate:"omitempty,gte=0"`
	SupportedRAMTypes nullable.Value[[]CPURAMTypeRequest] `json:"supportedRamTypes,omitzero"`
}

type CPURAMTypeResponse struct {
	RAMType        NamedRef `json:"ramType"`
	MaxMemoryClock int      `json:"maxMemoryClock"`
}

type CPUResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Vendor            NamedRef             `json:"vendor"`
	Socket            NamedRef             `json:"socket"`
	Cores             int                  `json:"cores"`
	Threads           int                  `json:"threads"`
	BaseClock         int                  `json:"baseClock"`
	BoostClock        int                  `json:"boostClock"`
	TDP               int                  `json:"tdp"`
	SupportedRAMTypes []CPURAMTypeResponse `json:"supportedRamTypes"`
}

func (c CPUResponse) ResourceID() string { return c.ID }

// supportedRAMTypesField must be a non-empty set; a RAM type may appear once.
// Items are checked here since the set is opaque to the struct validator.
func supportedRAMTypesField() Field[model.CPU, CPURequest] {
	const name = "supportedRamTypes"
	return Field[model.CPU, CPURequest]{
		Name:     name,
		Required: true,
		State: func(d *CPURequest) (bool, bool) {
			return d.SupportedRAMTypes.IsSet(), len(d.SupportedRAMTypes.OrZero()) == 0
		},
		Check: func(ctx context.Context, r *Resolver, d *CPURequest) error {
			items := d.SupportedRAMTypes.OrZero()
			seen := make(map[string]struct{}, len(items))
			for _, it := range items {
				if _, dup := seen[it.RAMType]; dup || it.RAMType == "" || it.MaxMemoryClock < 0 {
					return model.NewInvalidParameterError(name)
				}
				seen[it.RAMType] = struct{}{}
			}
			for _, it := range items {
				if err := r.Check(ctx, model.KindRAMType, it.RAMType); err != nil {
					return err
				}
			}
			return nil
		},
		Apply: func(d *CPURequest, e *model.CPU) {
			items := d.SupportedRAMTypes.OrZero()
			e.RAMTypes = make([]model.CPURAMType, 0, len(items))
			for _, it := range items {
				e.RAMTypes = append(e.RAMTypes, model.CPURAMType{RAMTypeID: it.RAMType, MaxMemoryClock: it.MaxMemoryClock})
			}
		},
	}
}

var CPUResource = &Resource[model.CPU, CPURequest, CPUResponse]{
	Kind:  model.KindCPU,
	Table: store.CPUs,
	Fields: []Field[model.CPU, CPURequest]{
		nameField(
			func(d *CPURequest) *nullable.Value[string] { return &d.Name },
			func(e *model.CPU) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *CPURequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.CPU) *string { return &e.VendorID }),
		refField("socket", model.KindSocket,
			func(d *CPURequest) *nullable.Value[string] { return &d.Socket },
			func(e *model.CPU) *string { return &e.SocketID }),
		intField("cores",
			func(d *CPURequest) *nullable.Value[int] { return &d.Cores },
			func(e *model.CPU) *int { return &e.Cores }),
		intField("threads",
			func(d *CPURequest) *nullable.Value[int] { return &d.Threads },
			func(e *model.CPU) *int { return &e.Threads }),
		intField("baseClock",
			func(d *CPURequest) *nullable.Value[int] { return &d.BaseClock },
			func(e *model.CPU) *int { return &e.BaseClock }),
		intField("boostClock",
			func(d *CPURequest) *nullable.Value[int] { return &d.BoostClock },
			func(e *model.CPU) *int { return &e.BoostClock }),
		intField("tdp",
			func(d *CPURequest) *nullable.Value[int] { return &d.TDP },
			func(e *model.CPU) *int { return &e.TDP }),
		supportedRAMTypesField(),
	},
	Key: []KeyPart[model.CPU]{
		column("name", "name", "name", func(e *model.CPU) any { return e.Name }),
	},
	Children: ownedLinks(store.CPURAMTypes,
		func(e *model.CPU) string { return e.ID },
		func(e *model.CPU) *[]model.CPURAMType { return &e.RAMTypes }),
	View: func(ctx context.Context, r *Resolver, e *model.CPU) (CPUResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return CPUResponse{}, err
		}
		socket, err := r.Named(ctx, model.KindSocket, e.SocketID)
		if err != nil {
			return CPUResponse{}, err
		}
		ramTypes := make([]CPURAMTypeResponse, 0, len(e.RAMTypes))
		for _, rt := range e.RAMTypes {
			ref, err := r.Named(ctx, model.KindRAMType, rt.RAMTypeID)
			if err != nil {
				return CPUResponse{}, err
			}
			ramTypes = append(ramTypes, CPURAMTypeResponse{RAMType: ref, MaxMemoryClock: rt.MaxMemoryClock})
		}
		return CPUResponse{
			ID:                e.ID,
			Name:              e.Name,
			Vendor:            vendor,
			Socket:            socket,
			Cores:             e.Cores,
			Threads:           e.Threads,
			BaseClock:         e.BaseClock,
			BoostClock:        e.BoostClock,
			TDP:               e.TDP,
			SupportedRAMTypes: ramTypes,
		}, nil
	},
}
