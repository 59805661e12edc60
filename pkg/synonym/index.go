// Package synonym resolves entity names and cross-database identifiers to
// stored entities.
//
// The index keeps a forward map (entity id -> names) and a reverse map
// (lowercased name -> entity). Reverse collisions are resolved by last write
// wins; they are counted and logged at debug level so loaders can spot
// ambiguous vocabularies.
package synonym

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kittclouds/metaboviz/internal/store"
)

// linkKey addresses the unification table.
type linkKey struct {
	db string
	id string
}

// Index is the synonym and unification index for one store snapshot.
// It is not safe for concurrent writes; after Build it is only read.
type Index struct {
	forward    map[string]map[string]struct{}
	reverse    map[string]store.Entity
	unify      map[linkKey]store.Entity
	collisions int
	log        *zap.Logger
}

// New creates an empty index.
func New(logger *zap.Logger) *Index {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Index{
		forward: make(map[string]map[string]struct{}),
		reverse: make(map[string]store.Entity),
		unify:   make(map[linkKey]store.Entity),
		log:     logger.Named("synonym"),
	}
}

// Build registers every entity of st: its id, name, synonyms and external
// links. Entities are registered in store load order, so later entities win
// name collisions.
func Build(st *store.Store, logger *zap.Logger) *Index {
	ix := New(logger)
	for _, e := range st.Entities() {
		ix.Register(e)
	}
	ix.log.Info("synonym index built",
		zap.Int("names", len(ix.reverse)),
		zap.Int("links", len(ix.unify)),
		zap.Int("collisions", ix.collisions),
	)
	return ix
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds the entity's id, display name, synonyms, extra names and
// external links. A name already owned by another entity is overwritten.
func (ix *Index) Register(e store.Entity, extraSynonyms ...string) {
	id := e.EntityID()
	names := ix.forward[id]
	if names == nil {
		names = make(map[string]struct{})
		ix.forward[id] = names
	}

	candidates := []string{id, e.DisplayName()}
	candidates = append(candidates, e.Synonyms()...)
	candidates = append(candidates, extraSynonyms...)

	for _, name := range candidates {
		key := normalize(name)
		if key == "" {
			continue
		}
		names[name] = struct{}{}
		if prev, ok := ix.reverse[key]; ok && prev.EntityID() != id {
			ix.collisions++
			ix.log.Debug("synonym collision",
				zap.String("name", key),
				zap.String("previous", prev.EntityID()),
				zap.String("winner", id),
			)
		}
		ix.reverse[key] = e
	}

	for _, l := range e.Links() {
		if l.DB == "" || l.ID == "" {
			continue
		}
		ix.unify[linkKey{db: l.DB, id: l.ID}] = e
	}
}

// Resolve looks a name up case-insensitively.
func (ix *Index) Resolve(name string) (store.Entity, bool) {
	e, ok := ix.reverse[normalize(name)]
	return e, ok
}

// ResolveExternal looks up an entity by external database and id.
func (ix *Index) ResolveExternal(db, externalID string) (store.Entity, bool) {
	e, ok := ix.unify[linkKey{db: db, id: externalID}]
	return e, ok
}

// ResolveAny accepts either "db:id" or a plain name. The unification table is
// consulted first; names containing a colon still fall back to Resolve.
func (ix *Index) ResolveAny(key string) (store.Entity, bool) {
	if db, id, ok := strings.Cut(strings.TrimSpace(key), ":"); ok {
		if e, found := ix.ResolveExternal(db, id); found {
			return e, true
		}
	}
	return ix.Resolve(key)
}

// Names returns the registered names of an entity, sorted.
func (ix *Index) Names(id string) []string {
	names := ix.forward[id]
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Collisions returns how many times a name changed owner.
func (ix *Index) Collisions() int { return ix.collisions }

// Len returns the number of distinct lowercased names.
func (ix *Index) Len() int { return len(ix.reverse) }
