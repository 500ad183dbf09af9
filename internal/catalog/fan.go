package catalog

import (
	"context"
	"fmt"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

type FanRequest struct {
	Name           nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
	Vendor         nullable.Value[string] `json:"vendor,omitzero"`
	FanSize        nullable.Value[string] `json:"fanSize,omitzero"`
	PowerConnector nullable.Value[string] `json:"powerConnector,omitzero"`
	MinRPM         nullable.Value[int]    `json:"minRpm,omitzero" validate:"omitempty,gte=0"`
	MaxRPM         nullable.Value[int]    `json:"maxRpm,omitzero" validate:"omitempty,gte=0"`
	Airflow        nullable.Value[int]    `json:"airflow,omitzero" validate:"omitempty,gte=0"`
	NoiseLevel     nullable.Value[int]    `json:"noiseLevel,omitzero" validate:"omitempty,gte=0"`
}

type FanResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Vendor         NamedRef      `json:"vendor"`
	FanSize        model.FanSize `json:"fanSize"`
	PowerConnector NamedRef      `json:"powerConnector"`
	MinRPM         int           `json:"minRpm"`
	MaxRPM         int           `json:"maxRpm"`
	Airflow        int           `json:"airflow"`
	NoiseLevel     int           `json:"noiseLevel"`
}

func (f FanResponse) ResourceID() string { return f.ID }

// fanSizeColumn shows a fan size as LxWxH in duplicate messages.
var fanSizeColumn = KeyPart[model.Fan]{
	Param:  "fanSize",
	Label:  "size",
	Column: "fan_size_id",
	Value:  func(e *model.Fan) any { return e.FanSizeID },
	Display: func(ctx context.Context, r *Resolver, e *model.Fan) (string, error) {
		fs, err := r.FanSize(ctx, e.FanSizeID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%dx%dx%d", fs.Length, fs.Width, fs.Height), nil
	},
}

var FanResource = &Resource[model.Fan, FanRequest, FanResponse]{
	Kind:  model.KindFan,
	Table: store.Fans,
	Fields: []Field[model.Fan, FanRequest]{
		nameField(
			func(d *FanRequest) *nullable.Value[string] { return &d.Name },
			func(e *model.Fan) *string { return &e.Name }),
		refField("vendor", model.KindVendor,
			func(d *FanRequest) *nullable.Value[string] { return &d.Vendor },
			func(e *model.Fan) *string { return &e.VendorID }),
		refField("fanSize", model.KindFanSize,
			func(d *FanRequest) *nullable.Value[string] { return &d.FanSize },
			func(e *model.Fan) *string { return &e.FanSizeID }),
		refField("powerConnector", model.KindFanPowerConnector,
			func(d *FanRequest) *nullable.Value[string] { return &d.PowerConnector },
			func(e *model.Fan) *string { return &e.PowerConnectorID }),
		intField("minRpm",
			func(d *FanRequest) *nullable.Value[int] { return &d.MinRPM },
			func(e *model.Fan) *int { return &e.MinRPM }),
		intField("maxRpm",
			func(d *FanRequest) *nullable.Value[int] { return &d.MaxRPM },
			func(e *model.Fan) *int { return &e.MaxRPM }),
		intField("airflow",
			func(d *FanRequest) *nullable.Value[int] { return &d.Airflow },
			func(e *model.Fan) *int { return &e.Airflow }),
		intField("noiseLevel",
			func(d *FanRequest) *nullable.Value[int] { return &d.NoiseLevel },
			func(e *model.Fan) *int { return &e.NoiseLevel }),
	},
	Key: []KeyPart[model.Fan]{
		column("name", "name", "name", func(e *model.Fan) any { return e.Name }),
		fanSizeColumn,
	},
	View: func(ctx context.Context, r *Resolver, e *model.Fan) (FanResponse, error) {
		vendor, err := r.Named(ctx, model.KindVendor, e.VendorID)
		if err != nil {
			return FanResponse{}, err
		}
		size, err := r.FanSize(ctx, e.FanSizeID)
		if err != nil {
			return FanResponse{}, err
		}
		power, err := r.Named(ctx, model.KindFanPowerConnector, e.PowerConnectorID)
		if err != nil {
			return FanResponse{}, err
		}
		return FanResponse{
			ID:             e.ID,
			Name:           e.Name,
			Vendor:         vendor,
			FanSize:        size,
			PowerConnector: power,
			MinRPM:         e.MinRPM,
			MaxRPM:         e.MaxRPM,
			Airflow:        e.Airflow,
			NoiseLevel:     e.NoiseLevel,
		}, nil
	},
}
