package store

import (
	"context"
	"fmt"

	"github.com/pcparts/catalog/internal/model"
)

// componentDDL is valid for both PostgreSQL and SQLite.
var componentDDL = []string{
	`CREATE TABLE IF NOT EXISTS fan_sizes (
        id TEXT PRIMARY KEY,
        length BIGINT NOT NULL,
        width BIGINT NOT NULL,
        height BIGINT NOT NULL,
        UNIQUE(length, width, height)
    )`,
	`CREATE TABLE IF NOT EXISTS cpus (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        socket_id TEXT NOT NULL REFERENCES sockets(id),
        cores BIGINT NOT NULL,
        threads BIGINT NOT NULL,
        base_clock BIGINT NOT NULL,
        boost_clock BIGINT NOT NULL,
        tdp BIGINT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS cpu_ram_types (
        cpu_id TEXT NOT NULL REFERENCES cpus(id) ON DELETE CASCADE,
        position BIGINT NOT NULL,
        ram_type_id TEXT NOT NULL REFERENCES ram_types(id),
        max_memory_clock BIGINT NOT NULL,
        PRIMARY KEY(cpu_id, ram_type_id)
    )`,
	`CREATE TABLE IF NOT EXISTS gpus (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        manufacturer_id TEXT NOT NULL REFERENCES manufacturers(id),
        memory_type_id TEXT NOT NULL REFERENCES video_memory_types(id),
        memory_size BIGINT NOT NULL,
        memory_bus BIGINT NOT NULL,
        core_clock BIGINT NOT NULL,
        boost_clock BIGINT NOT NULL,
        tdp BIGINT NOT NULL,
        length BIGINT NOT NULL,
        UNIQUE(name, memory_size, memory_type_id)
    )`,
	`CREATE TABLE IF NOT EXISTS coolers (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        height BIGINT NOT NULL,
        max_tdp BIGINT NOT NULL,
        fan_count BIGINT NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS cooler_sockets (
        cooler_id TEXT NOT NULL REFERENCES coolers(id) ON DELETE CASCADE,
        position BIGINT NOT NULL,
        socket_id TEXT NOT NULL REFERENCES sockets(id),
        PRIMARY KEY(cooler_id, socket_id)
    )`,
	`CREATE TABLE IF NOT EXISTS fans (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        fan_size_id TEXT NOT NULL REFERENCES fan_sizes(id),
        power_connector_id TEXT NOT NULL REFERENCES fan_power_connectors(id),
        min_rpm BIGINT NOT NULL,
        max_rpm BIGINT NOT NULL,
        airflow BIGINT NOT NULL,
        noise_level BIGINT NOT NULL,
        UNIQUE(name, fan_size_id)
    )`,
	`CREATE TABLE IF NOT EXISTS hdds (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        connector_id TEXT NOT NULL REFERENCES storage_connectors(id),
        power_connector_id TEXT REFERENCES storage_power_connectors(id),
        form_factor_id TEXT REFERENCES expansion_bay_formats(id),
        capacity BIGINT NOT NULL,
        spindle_speed BIGINT NOT NULL,
        cache_size BIGINT NOT NULL,
        UNIQUE(name, capacity, spindle_speed, cache_size)
    )`,
	`CREATE TABLE IF NOT EXISTS ssds (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        connector_id TEXT NOT NULL REFERENCES storage_connectors(id),
        power_connector_id TEXT REFERENCES storage_power_connectors(id),
        form_factor_id TEXT NOT NULL REFERENCES expansion_bay_formats(id),
        capacity BIGINT NOT NULL,
        read_speed BIGINT NOT NULL,
        write_speed BIGINT NOT NULL,
        UNIQUE(name, capacity)
    )`,
	`CREATE TABLE IF NOT EXISTS ram_modules (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        vendor_id TEXT NOT NULL REFERENCES vendors(id),
        type_id TEXT NOT NULL REFERENCES ram_types(id),
        design_id TEXT NOT NULL REFERENCES designs(id),
        capacity BIGINT NOT NULL,
        clock BIGINT NOT NULL,
        latency BIGINT NOT NULL,
        modules BIGINT NOT NULL,
        UNIQUE(name, capacity, type_id, design_id)
    )`,
}

// EnsureSchema creates every catalog table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := make([]string, 0, len(dictionaryTableNames)+len(componentDDL))
	for _, kind := range model.NamedDictionaries() {
		stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        id TEXT PRIMARY KEY,
        name TEXT NOT NULL UNIQUE
    )`, dictionaryTableNames[kind]))
	}
	stmts = append(stmts, componentDDL...)
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
