package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/pcparts/catalog/internal/model"
)

// SeedFile is the YAML document accepted by `catalogctl seed`. Components refer to
// dictionary rows by name and to fan sizes as "LxWxH"; the seeder swaps in ids.
//
//	dictionaries:
//	  vendors: [Intel, Seagate]
//	  sockets: [LGA1700]
//	fanSizes:
//	  - {length: 120, width: 120, height: 25}
//	components:
//	  cpus:
//	    - name: i5 12400F
//	      vendor: Intel
//	      socket: LGA1700
type SeedFile struct {
	Dictionaries map[string][]string         `yaml:"dictionaries"`
	FanSizes     []SeedFanSize               `yaml:"fanSizes"`
	Components   map[string][]map[string]any `yaml:"components"`
}

type SeedFanSize struct {
	Length int `yaml:"length" json:"length"`
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (f SeedFanSize) key() string { return fmt.Sprintf("%dx%dx%d", f.Length, f.Width, f.Height) }

// LoadSeedFile reads and decodes a seed file. Unknown top-level keys are rejected.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	for path := range f.Dictionaries {
		if k, ok := model.KindFromPath(path); !ok || !isNamedDictionary(k) {
			return nil, fmt.Errorf("unknown dictionary %q", path)
		}
	}
	for path := range f.Components {
		if _, ok := seedRefs[path]; !ok {
			return nil, fmt.Errorf("unknown component %q", path)
		}
	}
	return &f, nil
}

func isNamedDictionary(k model.Kind) bool {
	for _, d := range model.NamedDictionaries() {
		if d == k {
			return true
		}
	}
	return false
}

// ref names the dictionary a component field points at. Item is set for lists of
// objects whose Item key holds the reference.
type ref struct {
	kind model.Kind
	item string
}

var seedRefs = map[string]map[string]ref{
	"cpus": {
		"vendor":            {kind: model.KindVendor},
		"socket":            {kind: model.KindSocket},
		"supportedRamTypes": {kind: model.KindRAMType, item: "ramType"},
	},
	"gpus": {
		"manufacturer": {kind: model.KindManufacturer},
		"memoryType":   {kind: model.KindVideoMemoryType},
	},
	"coolers": {
		"vendor":           {kind: model.KindVendor},
		"supportedSockets": {kind: model.KindSocket},
	},
	"fans": {
		"vendor":         {kind: model.KindVendor},
		"fanSize":        {kind: model.KindFanSize},
		"powerConnector": {kind: model.KindFanPowerConnector},
	},
	"hdds": {
		"vendor":         {kind: model.KindVendor},
		"connector":      {kind: model.KindStorageConnector},
		"powerConnector": {kind: model.KindStoragePowerConnector},
		"formFactor":     {kind: model.KindExpansionBayFormat},
	},
	"ssds": {
		"vendor":         {kind: model.KindVendor},
		"connector":      {kind: model.KindStorageConnector},
		"powerConnector": {kind: model.KindStoragePowerConnector},
		"formFactor":     {kind: model.KindExpansionBayFormat},
	},
	"ram-modules": {
		"vendor": {kind: model.KindVendor},
		"type":   {kind: model.KindRAMType},
		"design": {kind: model.KindDesign},
	},
}

type SeedResult struct {
	Created int
	Skipped int
}

// Seeder loads a SeedFile through the REST API. Rows that already exist are skipped,
// so a file can be applied more than once.
type Seeder struct {
	c   *Client
	log zerolog.Logger
	ids map[model.Kind]map[string]string
}

func NewSeeder(c *Client, log zerolog.Logger) *Seeder {
	return &Seeder{c: c, log: log, ids: make(map[model.Kind]map[string]string)}
}

func (s *Seeder) Seed(ctx context.Context, f *SeedFile) (SeedResult, error) {
	var res SeedResult

	for _, kind := range model.NamedDictionaries() {
		names := f.Dictionaries[kind.Path()]
		if len(names) == 0 {
			continue
		}
		if err := s.index(ctx, kind); err != nil {
			return res, err
		}
		for _, name := range names {
			if _, ok := s.ids[kind][name]; ok {
				res.Skipped++
				continue
			}
			raw, err := s.c.Create(ctx, kind, map[string]string{"name": name})
			if err != nil {
				return res, fmt.Errorf("create %s %q: %w", kind, name, err)
			}
			if err := s.remember(kind, name, raw); err != nil {
				return res, err
			}
			res.Created++
		}
	}

	if len(f.FanSizes) > 0 {
		if err := s.index(ctx, model.KindFanSize); err != nil {
			return res, err
		}
		for _, fs := range f.FanSizes {
			if _, ok := s.ids[model.KindFanSize][fs.key()]; ok {
				res.Skipped++
				continue
			}
			raw, err := s.c.Create(ctx, model.KindFanSize, fs)
			if err != nil {
				return res, fmt.Errorf("create fan size %s: %w", fs.key(), err)
			}
			if err := s.remember(model.KindFanSize, fs.key(), raw); err != nil {
				return res, err
			}
			res.Created++
		}
	}

	for _, kind := range model.Components() {
		for _, item := range f.Components[kind.Path()] {
			body, err := s.resolve(ctx, kind, item)
			if err != nil {
				return res, err
			}
			if _, err := s.c.Create(ctx, kind, body); err != nil {
				if IsDuplicate(err) {
					s.log.Debug().Str("kind", kind.Path()).Interface("name", item["name"]).Msg("already seeded")
					res.Skipped++
					continue
				}
				return res, fmt.Errorf("create %s %v: %w", kind, item["name"], err)
			}
			res.Created++
		}
	}

	s.log.Info().Int("created", res.Created).Int("skipped", res.Skipped).Msg("seed complete")
	return res, nil
}

// index loads the existing rows of a dictionary once.
func (s *Seeder) index(ctx context.Context, kind model.Kind) error {
	if _, ok := s.ids[kind]; ok {
		return nil
	}
	raw, err := s.c.List(ctx, kind)
	if err != nil {
		return fmt.Errorf("list %s: %w", kind, err)
	}
	s.ids[kind] = make(map[string]string)
	if kind == model.KindFanSize {
		var rows []model.FanSize
		if err := json.Unmarshal(raw, &rows); err != nil {
			return fmt.Errorf("decode %s: %w", kind, err)
		}
		for _, r := range rows {
			s.ids[kind][SeedFanSize{Length: r.Length, Width: r.Width, Height: r.Height}.key()] = r.ID
		}
		return nil
	}
	var rows []model.Dictionary
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	for _, r := range rows {
		s.ids[kind][r.Name] = r.ID
	}
	return nil
}

func (s *Seeder) remember(kind model.Kind, key string, raw json.RawMessage) error {
	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode %s: %w", kind, err)
	}
	s.ids[kind][key] = out.ID
	return nil
}

func (s *Seeder) lookup(ctx context.Context, kind model.Kind, name any) (string, error) {
	key := fmt.Sprint(name)
	if err := s.index(ctx, kind); err != nil {
		return "", err
	}
	id, ok := s.ids[kind][key]
	if !ok {
		return "", fmt.Errorf("unknown %s %q", kind, key)
	}
	return id, nil
}

// resolve copies item with every reference name replaced by its id.
func (s *Seeder) resolve(ctx context.Context, kind model.Kind, item map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(item))
	for field, v := range item {
		out[field] = v
	}
	for field, r := range seedRefs[kind.Path()] {
		v, ok := item[field]
		if !ok || v == nil {
			continue
		}
		list, isList := v.([]any)
		if !isList {
			id, err := s.lookup(ctx, r.kind, v)
			if err != nil {
				return nil, fmt.Errorf("%s %v: %s: %w", kind, item["name"], field, err)
			}
			out[field] = id
			continue
		}
		resolved := make([]any, 0, len(list))
		for _, el := range list {
			if r.item == "" {
				id, err := s.lookup(ctx, r.kind, el)
				if err != nil {
					return nil, fmt.Errorf("%s %v: %s: %w", kind, item["name"], field, err)
				}
				resolved = append(resolved, id)
				continue
			}
			obj, ok := el.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s %v: %s: expected objects", kind, item["name"], field)
			}
			copied := make(map[string]any, len(obj))
			for k, ov := range obj {
				copied[k] = ov
			}
			id, err := s.lookup(ctx, r.kind, obj[r.item])
			if err != nil {
				return nil, fmt.Errorf("%s %v: %s: %w", kind, item["name"], field, err)
			}
			copied[r.item] = id
			resolved = append(resolved, copied)
		}
		out[field] = resolved
	}
	return out, nil
}
