package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type HDDRequest struct {
	Name           nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor         nullable.Value[string] `json:"vendor,omitzero"`
	Connector      nullable.Value[string] `json:"connector,omitzero"`
	PowerConnector nullable.Value[string] `json:"powerConnector,omitzero"`
	FormFactor     nullable.Value[string] `json:"formFactor,omitzero"`
	Capacity       nullable.Value[int]    `json:"capacity,omitzero" validate:"omitempty,gte=0"`
	SpindleSpeed   nullable.Value[int]    `json:"spindleSpeed,omitzero" validate:"omitempty,gte=0"`
	CacheSize      nullable.Value[int]    `json:"cacheSize,omitzero" validate:"omitempty,gte=0"`
}

type HDDResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Vendor         NamedRef  `json:"vendor"`
	Connector      NamedRef  `json:"connector"`
	PowerConnector *NamedRef `json:"powerConnector"`
	FormFactor     *NamedRef `json:"formFactor"`
	Capacity       int       `json:"capacity"`
	SpindleSpeed   int       `json:"spindleSpeed"`
	CacheSize      int       `json:"cacheSize"`
}

func (h HDDResponse) ResourceID() string { return h.ID }

var HDDResource = &Resource[model.HDD, HDDRequest, HDDResponse]{
	Kind:  model.KindHDD,
	Table: store.HDDs,
	Fields: []Field[model.HDD, HDDRequest]{
		nameField(
			func(d *HDDRequest) *nullable.Value[string] { return &d.Name },
			func(e *model.HDD) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *HDDRequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.HDD) *string { return &e.VendorID }),
		refField("connector", model.KindStorageConnector,
			func(d *HDDRequest) *nullable.Value[string] { return &d.Connector },
			func(e *model.HDD) *string { return &e.ConnectorID }),
		optRefField("powerConnector", model.KindStoragePowerConnector,
			func(d *HDDRequest) *nullable.Value[string] { return &d.PowerConnector },
			func(e *model.HDD) **string { return &e.PowerConnectorID }),
		optRefField("formFactor", model.KindExpansionBayFormat,
			func(d *HDDRequest) *nullable.Value[string] { return &d.FormFactor },
			func(e *model.HDD) **string { return &e.FormFactorID }),
		intField("capacity",
			func(d *HDDRequest) *nullable.Value[int] { return &d.Capacity },
			func(e *model.HDD) *int { return &e.Capacity }),
		intField("spindleSpeed",
			func(d *HDDRequest) *nullable.Value[int] { return &d.SpindleSpeed },
			func(e *model.HDD) *int { return &e.SpindleSpeed }),
		intField("cacheSize",
			func(d *HDDRequest) *nullable.Value[int] { return &d.CacheSize },
			func(e *model.HDD) *int { return &e.CacheSize }),
	},
	Key: []KeyPart[model.HDD]{
		column("name", "name", "name", func(e *model.HDD) any { return e.Name }),
		column("capacity", "capacity", "capacity", func(e *model.HDD) any { return e.Capacity }),
		column("spindleSpeed", "spindle speed", "spindle_speed", func(e *model.HDD) any { return e.SpindleSpeed }),
		column("cacheSize", "cache size", "cache_size", func(e *model.HDD) any { return e.CacheSize }),
	},
	View: func(ctx context.Context, r *Resolver, e *model.HDD) (HDDResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return HDDResponse{}, err
		}
		connector, err := r.Named(ctx, model.KindStorageConnector, e.ConnectorID)
		if err != nil {
			return HDDResponse{}, err
		}
		power, err := r.OptionalNamed(ctx, model.KindStoragePowerConnector, e.PowerConnectorID)
		if err != nil {
			return HDDResponse{}, err
		}
		format, err := r.OptionalNamed(ctx, model.KindExpansionBayFormat, e.FormFactorID)
		if err != nil {
			return HDDResponse{}, err
		}
		return HDDResponse{
			ID:             e.ID,
			Name:           e.Name,
			Vendor:         vendor,
			Connector:      connector,
			PowerConnector: power,
			FormFactor:     format,
			Capacity:       e.Capacity,
			SpindleSpeed:   e.SpindleSpeed,
			CacheSize:      e.CacheSize,
		}, nil
	},
}
