package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/marsdencc/clubdata/internal/config"
	"github.com/marsdencc/clubdata/internal/docstore"
)

// Persisted reports which targets actually took the write.
type Persisted struct {
	Database bool `json:"database"`
	File     bool `json:"file"`
}

// Importer persists fixture sets to up to two independent targets: the
// document database (primary) and the local JSON mirror (secondary,
// convenience for local development). Each is best-effort; the import as a
// whole fails only when every configured target fails.
type Importer struct {
	Database docstore.Store // nil when no database is configured
	Mirror   docstore.Store
	Logger   *slog.Logger
}

// NewImporter wires an importer over the configured stores.
func NewImporter(database, mirror docstore.Store, logger *slog.Logger) *Importer {
	return &Importer{Database: database, Mirror: mirror, Logger: logger}
}

// Persist writes the set to all configured targets, whole-document
// overwrite, last-write-wins.
func (im *Importer) Persist(ctx context.Context, set *FixtureSet) (Persisted, error) {
	doc, err := json.Marshal(set)
	if err != nil {
		return Persisted{}, fmt.Errorf("marshal fixture set: %w", err)
	}

	var persisted Persisted

	if im.Database != nil {
		if err := im.Database.Put(ctx, config.FixturesKey, doc); err != nil {
			im.Logger.Error("Fixture database write failed", "error", err)
		} else {
			persisted.Database = true
		}
	}

	if im.Mirror != nil {
		if err := im.Mirror.Put(ctx, config.FixturesKey, doc); err != nil {
			im.Logger.Error("Fixture mirror write failed", "error", err)
		} else {
			persisted.File = true
		}
	}

	if !persisted.Database && !persisted.File {
		return persisted, fmt.Errorf("all persistence targets failed")
	}
	return persisted, nil
}

// Load reads the last persisted FixtureSet, preferring the database.
func (im *Importer) Load(ctx context.Context) (*FixtureSet, bool, error) {
	for _, store := range []docstore.Store{im.Database, im.Mirror} {
		if store == nil {
			continue
		}
		doc, ok, err := store.Get(ctx, config.FixturesKey)
		if err != nil {
			im.Logger.Warn("Fixture read failed", "error", err)
			continue
		}
		if !ok {
			continue
		}
		var set FixtureSet
		if err := json.Unmarshal(doc, &set); err != nil {
			return nil, false, fmt.Errorf("decode persisted fixtures: %w", err)
		}
		return &set, true, nil
	}
	return nil, false, nil
}
