package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type CoolerRequest struct {
	Name             nullable.Value[string]   `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor           nullable.Value[string]   `json:"vendor,omitzero"`
	Height           nullable.Value[int]      `json:"height,omitzero" validate:"omitempty,gte=0"`
	MaxTDP           nullable.Value[int]      `json:"maxTdp,omitzero" validate:"omitempty,gte=0"`
	FanCount         nullable.Value[int]      `json:"fanCount,omitzero" validate:"omitempty,gte=0"`
	SupportedSockets nullable.Value[[]string] `json:"supportedSockets,omitzero"`
}

type CoolerResponse struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Vendor           NamedRef   `json:"vendor"`
	Height           int        `json:"height"`
	MaxTDP           int        `json:"maxTdp"`
	FanCount         int        `json:"fanCount"`
	SupportedSockets []NamedRef `json:"supportedSockets"`
}

func (c CoolerResponse) ResourceID() string { return c.ID }

var CoolerResource = &Resource[model.Cooler, CoolerRequest, CoolerResponse]{
	Kind:  model.KindCooler,
	Table: store.Coolers,
	Fields: []Field[model.Cooler, CoolerRequest]{
		nameField(
			func(d *CoolerRequest) *nullable.Value[string] { return &d.Name },
			func(e *model.Cooler) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *CoolerRequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.Cooler) *string { return &e.VendorID }),
		intField("height",
			func(d *CoolerRequest) *nullable.Value[int] { return &d.Height },
			func(e *model.Cooler) *int { return &e.Height }),
		intField("maxTdp",
			func(d *CoolerRequest) *nullable.Value[int] { return &d.MaxTDP },
			func(e *model.Cooler) *int { return &e.MaxTDP }),
		intField("fanCount",
			func(d *CoolerRequest) *nullable.Value[int] { return &d.FanCount },
			func(e *model.Cooler) *int { return &e.FanCount }),
		refSetField("supportedSockets", model.KindSocket,
			func(d *CoolerRequest) *nullable.Value[[]string] { return &d.SupportedSockets },
			func(e *model.Cooler) *[]string { return &e.SocketIDs }),
	},
	Key: []KeyPart[model.Cooler]{
		column("name", "name", "name", func(e *model.Cooler) any { return e.Name }),
	},
	Children: ownedLinks(store.CoolerSockets,
		func(e *model.Cooler) string { return e.ID },
		func(e *model.Cooler) *[]string { return &e.SocketIDs }),
	View: func(ctx context.Context, r *Resolver, e *model.Cooler) (CoolerResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return CoolerResponse{}, err
		}
		sockets := make([]NamedRef, 0, len(e.SocketIDs))
		for _, id := range e.SocketIDs {
			ref, err := r.Named(ctx, model.KindSocket, id)
			if err != nil {
				return CoolerResponse{}, err
			}
			sockets = append(sockets, ref)
		}
		return CoolerResponse{
			ID:               e.ID,
			Name:             e.Name,
			Vendor:           vendor,
			Height:           e.Height,
			MaxTDP:           e.MaxTDP,
			FanCount:         e.FanCount,
			SupportedSockets: sockets,
		}, nil
	},
}
