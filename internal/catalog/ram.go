package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type RAMModuleRequest struct {
	Name     nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor   nullable.Value[string] `json:"vendor,omitzero"`
	Type     nullable.Value[string] `json:"type,omitzero"`
	Design   nullable.Value[string] `json:"design,omitzero"`
	Capacity nullable.Value[int]    `json:"capacity,omitzero" validate:"omitempty,gte=0"`
	Clock    nullable.Value[int]    `json:"clock,omitzero" validate:"omitempty,gte=0"`
	Latency  nullable.Value[int]    `json:"latency,omitzero" validate:"omitempty,gte=0"`
	Modules  nullable.Value[int]    `json:"modules,omitzero" validate:"omitempty,gte=0"`
}

type RAMModuleResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Vendor   NamedRef `json:"vendor"`
	Type     NamedRef `json:"type"`
	Design   NamedRef `json:"design"`
	Capacity int      `json:"capacity"`
	Clock    int      `json:"clock"`
	Latency  int      `json:"latency"`
	Modules  int      `json:"modules"`
}

func (m RAMModuleResponse) ResourceID() string { return m.ID }

var RAMModuleResource = &Resource[model.RAMModule, RAMModuleRequest, RAMModuleResponse]{
	Kind:  model.KindRAMModule,
	Table: store.RAMModules,
	Fields: []Field[model.RAMModule, RAMModuleRequest]{
		nameField(
			func(d *RAMModuleRequest) *nullable.Value[string] { return &d.Name },
			func(e *model.RAMModule) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *RAMModuleRequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.RAMModule) *string { return &e.VendorID }),
		refField("type", model.KindRAMType,
			func(d *RAMModuleRequest) *nullable.Value[string] { return &d.Type },
			func(e *model.RAMModule) *string { return &e.TypeID }),
		refField("design", model.KindDesign,
			func(d *RAMModuleRequest) *nullable.Value[string] { return &d.Design },
			func(e *model.RAMModule) *string { return &e.DesignID }),
		intField("capacity",
			func(d *RAMModuleRequest) *nullable.Value[int] { return &d.Capacity },
			func(e *model.RAMModule) *int { return &e.Capacity }),
		intField("clock",
			func(d *RAMModuleRequest) *nullable.Value[int] { return &d.Clock },
			func(e *model.RAMModule) *int { return &e.Clock }),
		intField("latency",
			func(d *RAMModuleRequest) *nullable.Value[int] { return &d.Latency },
			func(e *model.RAMModule) *int { return &e.Latency }),
		intField("modules",
			func(d *RAMModuleRequest) *nullable.Value[int] { return &d.Modules },
			func(e *model.RAMModule) *int { return &e.Modules }),
	},
	Key: []KeyPart[model.RAMModule]{
		column("name", "name", "name", func(e *model.RAMModule) any { return e.Name }),
		column("capacity", "capacity", "capacity", func(e *model.RAMModule) any { return e.Capacity }),
		namedColumn("type", "type", "type_id", model.KindRAMType,
			func(e *model.RAMModule) string { return e.TypeID }),
		namedColumn("design", "design", "design_id", model.KindDesign,
			func(e *model.RAMModule) string { return e.DesignID }),
	},
	View: func(ctx context.Context, r *Resolver, e *model.RAMModule) (RAMModuleResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return RAMModuleResponse{}, err
		}
		ramType, err := r.Named(ctx, model.KindRAMType, e.TypeID)
		if err != nil {
			return RAMModuleResponse{}, err
		}
		design, err := r.Named(ctx, model.KindDesign, e.DesignID)
		if err != nil {
			return RAMModuleResponse{}, err
		}
		return RAMModuleResponse{
			ID:       e.ID,
			Name:     e.Name,
			Vendor:   vendor,
			Type:     ramType,
			Design:   design,
			Capacity: e.Capacity,
			Clock:    e.Clock,
			Latency:  e.Latency,
			Modules:  e.Modules,
		}, nil
	},
}
