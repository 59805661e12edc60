// SQLite-backed persistence for loader records.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// SQLiteSource persists Records in a SQLite database.
type SQLiteSource struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema stores one row per loader record plus an ordered relation table.
// Records keep their loader position so a round trip preserves load order,
// which in turn fixes ordinal and synonym registration order.
const schema = `
CREATE TABLE IF NOT EXISTS records (
    seq INTEGER PRIMARY KEY,
    id TEXT NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    direction TEXT NOT NULL DEFAULT '',
    synonyms TEXT,
    links TEXT
);

CREATE INDEX IF NOT EXISTS idx_records_id ON records(id);
CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind, seq);

-- Note: No foreign keys - dangling ids are legal and ignored by Build
CREATE TABLE IF NOT EXISTS relations (
    record_seq INTEGER NOT NULL,
    relation TEXT NOT NULL,
    position INTEGER NOT NULL,
    target TEXT NOT NULL,
    PRIMARY KEY (record_seq, relation, position)
);
`

// Relation names used in the relations table.
const (
	relPrimaryInput    = "primary_input"
	relPrimaryOutput   = "primary_output"
	relSecondaryInput  = "secondary_input"
	relSecondaryOutput = "secondary_output"
	relCatalyst        = "catalyst"
	relPathway         = "pathway"
	relReaction        = "reaction"
	relGene            = "gene"
	relCompartment     = "compartment"
)

// NewSQLiteSource opens (or creates) a database at dsn.
// Use ":memory:" for an in-memory database or a file path for persistent storage.
func NewSQLiteSource(dsn string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// =============================================================================
// Save
// =============================================================================

// Save replaces the stored records with recs in a single transaction.
func (s *SQLiteSource) Save(ctx context.Context, recs *Records) error {
	if recs == nil {
		return ErrNilRecords
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM relations`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return err
	}

	w := &recordWriter{ctx: ctx, tx: tx}
	for _, g := range recs.Genes {
		w.record(g.EntityRecord, KindGene, "")
	}
	for _, p := range recs.Proteins {
		seq := w.record(p.EntityRecord, KindProtein, "")
		w.relations(seq, relGene, p.Genes)
		w.relations(seq, relCompartment, p.Compartments)
	}
	for _, m := range recs.Metabolites {
		w.record(m.EntityRecord, KindMetabolite, "")
	}
	for _, p := range recs.Pathways {
		seq := w.record(p.EntityRecord, KindPathway, "")
		w.relations(seq, relReaction, p.Reactions)
	}
	for _, r := range recs.Reactions {
		seq := w.record(r.EntityRecord, KindReaction, r.Direction)
		w.relations(seq, relPrimaryInput, r.PrimaryInputs)
		w.relations(seq, relPrimaryOutput, r.PrimaryOutputs)
		w.relations(seq, relSecondaryInput, r.SecondaryInputs)
		w.relations(seq, relSecondaryOutput, r.SecondaryOutputs)
		w.relations(seq, relCatalyst, r.Catalysts)
		w.relations(seq, relPathway, r.Pathways)
	}
	if w.err != nil {
		return w.err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// recordWriter keeps the first error and turns later calls into no-ops.
type recordWriter struct {
	ctx context.Context
	tx  *sql.Tx
	seq int64
	err error
}

func (w *recordWriter) record(rec EntityRecord, kind Kind, direction string) int64 {
	if w.err != nil {
		return 0
	}
	synonymsJSON, err := json.Marshal(rec.Synonyms)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal synonyms: %w", err)
		return 0
	}
	linksJSON, err := json.Marshal(rec.Links)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal links: %w", err)
		return 0
	}
	w.seq++
	_, err = w.tx.ExecContext(w.ctx, `
		INSERT INTO records (seq, id, kind, name, direction, synonyms, links)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, w.seq, rec.ID, string(kind), rec.Name, direction, string(synonymsJSON), string(linksJSON))
	if err != nil {
		w.err = fmt.Errorf("failed to insert %s %s: %w", kind, rec.ID, err)
	}
	return w.seq
}

func (w *recordWriter) relations(seq int64, relation string, targets []string) {
	for i, target := range targets {
		if w.err != nil {
			return
		}
		_, err := w.tx.ExecContext(w.ctx, `
			INSERT INTO relations (record_seq, relation, position, target)
			VALUES (?, ?, ?, ?)
		`, seq, relation, i, target)
		if err != nil {
			w.err = fmt.Errorf("failed to insert relation %s: %w", relation, err)
		}
	}
}

// =============================================================================
// Load
// =============================================================================

// Records reads every stored record in its original order.
func (s *SQLiteSource) Records(ctx context.Context) (*Records, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rels, err := s.loadRelations(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, kind, name, direction, synonyms, links
		FROM records ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := &Records{}
	for rows.Next() {
		var (
			seq                     int64
			kind, direction         string
			synonymsJSON, linksJSON sql.NullString
			rec                     EntityRecord
		)
		if err := rows.Scan(&seq, &rec.ID, &kind, &rec.Name, &direction, &synonymsJSON, &linksJSON); err != nil {
			return nil, err
		}
		if err := unmarshalNullable(synonymsJSON, &rec.Synonyms); err != nil {
			return nil, fmt.Errorf("failed to parse synonyms of %s: %w", rec.ID, err)
		}
		if err := unmarshalNullable(linksJSON, &rec.Links); err != nil {
			return nil, fmt.Errorf("failed to parse links of %s: %w", rec.ID, err)
		}

		r := rels[seq]
		switch Kind(kind) {
		case KindGene:
			recs.Genes = append(recs.Genes, GeneRecord{EntityRecord: rec})
		case KindProtein:
			recs.Proteins = append(recs.Proteins, ProteinRecord{
				EntityRecord: rec,
				Genes:        r[relGene],
				Compartments: r[relCompartment],
			})
		case KindMetabolite:
			recs.Metabolites = append(recs.Metabolites, MetaboliteRecord{EntityRecord: rec})
		case KindPathway:
			recs.Pathways = append(recs.Pathways, PathwayRecord{EntityRecord: rec, Reactions: r[relReaction]})
		case KindReaction:
			recs.Reactions = append(recs.Reactions, ReactionRecord{
				EntityRecord:     rec,
				PrimaryInputs:    r[relPrimaryInput],
				PrimaryOutputs:   r[relPrimaryOutput],
				SecondaryInputs:  r[relSecondaryInput],
				SecondaryOutputs: r[relSecondaryOutput],
				Catalysts:        r[relCatalyst],
				Direction:        direction,
				Pathways:         r[relPathway],
			})
		default:
			return nil, fmt.Errorf("unknown record kind %q for %s", kind, rec.ID)
		}
	}
	return recs, rows.Err()
}

func (s *SQLiteSource) loadRelations(ctx context.Context) (map[int64]map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_seq, relation, target
		FROM relations ORDER BY record_seq, relation, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]map[string][]string)
	for rows.Next() {
		var seq int64
		var relation, target string
		if err := rows.Scan(&seq, &relation, &target); err != nil {
			return nil, err
		}
		if out[seq] == nil {
			out[seq] = make(map[string][]string)
		}
		out[seq][relation] = append(out[seq][relation], target)
	}
	return out, rows.Err()
}

// CountRecords returns the number of stored records.
func (s *SQLiteSource) CountRecords(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count)
	return count, err
}

func unmarshalNullable(v sql.NullString, dst any) error {
	if !v.Valid || v.String == "" || v.String == "null" {
		return nil
	}
	return json.Unmarshal([]byte(v.String), dst)
}
