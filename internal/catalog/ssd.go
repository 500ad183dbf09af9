package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type SSDRequest struct {
	Name           nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor         nullable.Value[string] `json:"vendor,omitzero"`
	Connector      nullable.Value[string] `json:"connector,omitzero"`
	PowerConnector nullable.Value[string] `json:"powerConnector,omitzero"`
	FormFactor     nullable.Value[string] `json:"formFactor,omitzero"`
	Capacity       nullable.Value[int]    `json:"capacity,omitzero" validate:"omitempty,gte=0"`
	ReadSpeed      nullable.Value[int]    `json:"readSpeed,omitzero" validate:"omitempty,gte=0"`
	WriteSpeed     nullable.Value[int]    `json:"writeSpeed,omitzero" validate:"omitempty,gte=0"`
}

type SSDResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Vendor         NamedRef  `json:"vendor"`
	Connector      NamedRef  `json:"connector"`
	PowerConnector *NamedRef `json:"powerConnector"`
	FormFactor     NamedRef  `json:"formFactor"`
	Capacity       int       `json:"capacity"`
	ReadSpeed      int       `json:"readSpeed"`
	WriteSpeed     int       `json:"writeSpeed"`
}

func (s SSDResponse) ResourceID() string { return s.ID }

var SSDResource = &Resource[model.SSD, SSDRequest, SSDResponse]{
	Kind:  model.KindSSD,
	Table: store.SSDs,
	Fields: []Field[model.SSD, SSDRequest]{
		nameField(
			func(d *SSDRequest) *nullable.Value[string] { return &d.Name },
			func(e *model.SSD) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *SSDRequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.SSD) *string { return &e.VendorID }),
		refField("connector", model.KindStorageConnector,
			func(d *SSDRequest) *nullable.Value[string] { return &d.Connector },
			func(e *model.SSD) *string { return &e.ConnectorID }),
		optRefField("powerConnector", model.KindStoragePowerConnector,
			func(d *SSDRequest) *nullable.Value[string] { return &d.PowerConnector },
			func(e *model.SSD) **string { return &e.PowerConnectorID }),
		refField("formFactor", model.KindExpansionBayFormat,
			func(d *SSDRequest) *nullable.Value[string] { return &d.FormFactor },
			func(e *model.SSD) *string { return &e.FormFactorID }),
		intField("capacity",
			func(d *SSDRequest) *nullable.Value[int] { return &d.Capacity },
			func(e *model.SSD) *int { return &e.Capacity }),
		intField("readSpeed",
			func(d *SSDRequest) *nullable.Value[int] { return &d.ReadSpeed },
			func(e *model.SSD) *int { return &e.ReadSpeed }),
		intField("writeSpeed",
			func(d *SSDRequest) *nullable.Value[int] { return &d.WriteSpeed },
			func(e *model.SSD) *int { return &e.WriteSpeed }),
	},
	Key: []KeyPart[model.SSD]{
		column("name", "name", "name", func(e *model.SSD) any { return e.Name }),
		column("capacity", "capacity", "capacity", func(e *model.SSD) any { return e.Capacity }),
	},
	View: func(ctx context.Context, r *Resolver, e *model.SSD) (SSDResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return SSDResponse{}, err
		}
		connector, err := r.Named(ctx, model.KindStorageConnector, e.ConnectorID)
		if err != nil {
			return SSDResponse{}, err
		}
		power, err := r.OptionalNamed(ctx, model.KindStoragePowerConnector, e.PowerConnectorID)
		if err != nil {
			return SSDResponse{}, err
		}
		format, err := r.Named(ctx, model.KindExpansionBayFormat, e.FormFactorID)
		if err != nil {
			return SSDResponse{}, err
		}
		return SSDResponse{
			ID:             e.ID,
			Name:           e.Name,
			Vendor:         vendor,
			Connector:      connector,
			PowerConnector: power,
			FormFactor:     format,
			Capacity:       e.Capacity,
			ReadSpeed:      e.ReadSpeed,
			WriteSpeed:     e.WriteSpeed,
		}, nil
	},
}
