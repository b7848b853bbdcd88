package sqlite

import "database/sql"

// schema se aplica al arrancar. Las fechas se guardan como unix seconds
// (INTEGER); las columnas nullable modelan los campos opcionales del dominio.
// animals va primero: el resto de tablas le cuelga por foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS animals (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    species TEXT NOT NULL,
    breed TEXT NOT NULL DEFAULT '',
    gender TEXT NOT NULL,
    birth_date INTEGER,
    image_ref TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cycles (
    id TEXT PRIMARY KEY,
    animal_id TEXT NOT NULL,
    start_date INTEGER NOT NULL,
    end_date INTEGER,
    intensity INTEGER NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    recorded_at INTEGER NOT NULL,
    FOREIGN KEY (animal_id) REFERENCES animals(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS health_records (
    id TEXT PRIMARY KEY,
    animal_id TEXT NOT NULL,
    date INTEGER NOT NULL,
    weight REAL,
    temperature REAL,
    appetite INTEGER NOT NULL,
    activity_level INTEGER NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (animal_id) REFERENCES animals(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS weight_records (
    id TEXT PRIMARY KEY,
    animal_id TEXT NOT NULL,
    date INTEGER NOT NULL,
    weight REAL NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (animal_id) REFERENCES animals(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS care_records (
    id TEXT PRIMARY KEY,
    animal_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    label TEXT NOT NULL,
    date INTEGER NOT NULL,
    next_scheduled_date INTEGER,
    interval_days INTEGER,
    notes TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (animal_id) REFERENCES animals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cycles_animal_id ON cycles(animal_id);
CREATE INDEX IF NOT EXISTS idx_health_records_animal_id ON health_records(animal_id);
CREATE INDEX IF NOT EXISTS idx_weight_records_animal_id ON weight_records(animal_id);
CREATE INDEX IF NOT EXISTS idx_care_records_animal_id ON care_records(animal_id);
`

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
