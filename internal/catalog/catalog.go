// Package catalog implements validated CRUD for dictionaries and hardware components.
package catalog

import (
	"github.com/rs/zerolog"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/store"
)

type (
	DictionaryService = Service[model.Dictionary, DictionaryRequest, model.Dictionary]
	FanSizeService    = Service[model.FanSize, FanSizeRequest, model.FanSize]
	CPUService        = Service[model.CPU, CPURequest, CPUResponse]
	GPUService        = Service[model.GPU, GPURequest, GPUResponse]
	CoolerService     = Service[model.Cooler, CoolerRequest, CoolerResponse]
	FanService        = Service[model.Fan, FanRequest, FanResponse]
	HDDService        = Service[model.HDD, HDDRequest, HDDResponse]
	SSDService        = Service[model.SSD, SSDRequest, SSDResponse]
	RAMModuleService  = Service[model.RAMModule, RAMModuleRequest, RAMModuleResponse]
)

// Catalog holds one service per resource, all sharing a store.
type Catalog struct {
	Dictionaries map[model.Kind]*DictionaryService
	FanSizes     *FanSizeService
	CPUs         *CPUService
	GPUs         *GPUService
	Coolers      *CoolerService
	Fans         *FanService
	HDDs         *HDDService
	SSDs         *SSDService
	RAMModules   *RAMModuleService
}

func New(st *store.Store, log zerolog.Logger) *Catalog {
	c := &Catalog{
		Dictionaries: make(map[model.Kind]*DictionaryService),
		FanSizes:     NewService(st, FanSizeResource, log),
		CPUs:         NewService(st, CPUResource, log),
		GPUs:         NewService(st, GPUResource, log),
		Coolers:      NewService(st, CoolerResource, log),
		Fans:         NewService(st, FanResource, log),
		HDDs:         NewService(st, HDDResource, log),
		SSDs:         NewService(st, SSDResource, log),
		RAMModules:   NewService(st, RAMModuleResource, log),
	}
	for _, kind := range model.NamedDictionaries() {
		c.Dictionaries[kind] = NewService(st, DictionaryResource(kind), log)
	}
	return c
}

// Dictionary returns the service of a named dictionary kind.
func (c *Catalog) Dictionary(kind model.Kind) *DictionaryService {
	return c.Dictionaries[kind]
}
