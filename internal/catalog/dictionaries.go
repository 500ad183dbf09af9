package catalog

import (
	"context"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
	"github.com/pcparts/catalog/internal/store"
)

// DictionaryRequest is the payload for every named dictionary.
type DictionaryRequest struct {
	Name nullable.Value[string] `json:"name,omitzero" validate:"omitempty,max=255"`
}

type FanSizeRequest struct {
	Length nullable.Value[int] `json:"length,omitzero" validate:"omitempty,gt=0"`
	Width  nullable.Value[int] `json:"width,omitzero" validate:"omitempty,gt=0"`
	Height nullable.Value[int] `json:"height,omitzero" validate:"omitempty,gt=0"`
}

// DictionaryResource describes one of the named dictionaries.
func DictionaryResource(kind model.Kind) *Resource[model.Dictionary, DictionaryRequest, model.Dictionary] {
	return &Resource[model.Dictionary, DictionaryRequest, model.Dictionary]{
		Kind:  kind,
		Table: store.DictionaryTable(kind),
		Fields: []Field[model.Dictionary, DictionaryRequest]{
			nameField(
				func(d *DictionaryRequest) *nullable.Value[string] { return &d.Name },
				func(e *model.Dictionary) *string { return &e.Name }),
		},
		Key: []KeyPart[model.Dictionary]{
			column("name", "name", "name", func(e *model.Dictionary) any { return e.Name }),
		},
		View: func(_ context.Context, _ *Resolver, e *model.Dictionary) (model.Dictionary, error) {
			return *e, nil
		},
	}
}

var FanSizeResource = &Resource[model.FanSize, FanSizeRequest, model.FanSize]{
	Kind:  model.KindFanSize,
	Table: store.FanSizes,
	Fields: []Field[model.FanSize, FanSizeRequest]{
		requiredIntField("length",
			func(d *FanSizeRequest) *nullable.Value[int] { return &d.Length },
			func(e *model.FanSize) *int { return &e.Length }),
		requiredIntField("width",
			func(d *FanSizeRequest) *nullable.Value[int] { return &d.Width },
			func(e *model.FanSize) *int { return &e.Width }),
		requiredIntField("height",
			func(d *FanSizeRequest) *nullable.Value[int] { return &d.Height },
			func(e *model.FanSize) *int { return &e.Height }),
	},
	Key: []KeyPart[model.FanSize]{
		column("length", "length", "length", func(e *model.FanSize) any { return e.Length }),
		column("width", "width", "width", func(e *model.FanSize) any { return e.Width }),
		column("height", "height", "height", func(e *model.FanSize) any { return e.Height }),
	},
	View: func(_ context.Context, _ *Resolver, e *model.FanSize) (model.FanSize, error) {
		return *e, nil
	},
}
