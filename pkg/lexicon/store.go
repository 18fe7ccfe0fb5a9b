// Package lexicon stores imported wordnets in a SQLite database under a
// data directory and answers the lookups the enhancement run needs.
package lexicon

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fcbond/ChainNet/pkg/lmf"
)

const schema = `
create table if not exists lexicons (
	lexicon_id integer primary key autoincrement,
	project text not null,
	version text not null,
	label text not null,
	language text not null,
	email text,
	license text,
	url text,
	citation text,
	lmf_version text,
	unique (project, version)
);
create table if not exists entries (
	lexicon_id integer not null references lexicons,
	entry_id text not null,
	written_form text not null,
	part_of_speech text not null,
	primary key (lexicon_id, entry_id)
);
create table if not exists senses (
	lexicon_id integer not null references lexicons,
	sense_id text not null,
	entry_id text not null,
	synset_id text not null,
	identifier text,
	ord integer not null,
	primary key (lexicon_id, sense_id)
);
create table if not exists synsets (
	lexicon_id integer not null references lexicons,
	synset_id text not null,
	ili text,
	part_of_speech text,
	members text,
	primary key (lexicon_id, synset_id)
);
create table if not exists definitions (
	lexicon_id integer not null references lexicons,
	synset_id text not null,
	definition text not null
);
create table if not exists sense_relations (
	lexicon_id integer not null references lexicons,
	source_id text not null,
	rel_type text not null,
	target_id text not null
);
create table if not exists synset_relations (
	lexicon_id integer not null references lexicons,
	source_id text not null,
	rel_type text not null,
	target_id text not null
);
create index if not exists idx_senses_identifier on senses (lexicon_id, identifier);
create index if not exists idx_senses_entry on senses (lexicon_id, entry_id);
create index if not exists idx_definitions_synset on definitions (lexicon_id, synset_id);
create index if not exists idx_sense_relations_source on sense_relations (lexicon_id, source_id);
create index if not exists idx_synset_relations_source on synset_relations (lexicon_id, source_id);
`

var pragmas = []string{
	"pragma journal_mode = wal",
	"pragma synchronous = normal",
}

// Store is a collection of installed lexicons backed by a SQLite
// database file wn.db inside the data directory.
type Store struct {
	db  *sql.DB
	dir string
}

// Info identifies one installed lexicon and carries its metadata.
type Info struct {
	ID       int64
	Project  string
	Version  string
	Label    string
	Language string
	Email    string
	License  string
	URL      string
	Citation string
}

// Spec returns the lexicon specifier, e.g. "omw-en:1.4".
func (in Info) Spec() string {
	return in.Project + ":" + in.Version
}

// Open opens (creating if needed) the store under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(dataDir, "wn.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db, dir: dataDir}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the store's data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Has reports whether a lexicon matching spec is installed. A bare
// project id matches any installed version of that project.
func (s *Store) Has(spec string) (bool, error) {
	project, version, _ := strings.Cut(spec, ":")
	var query string
	var args []interface{}
	if version == "" {
		query = "SELECT EXISTS (SELECT 1 FROM lexicons WHERE project = ?)"
		args = []interface{}{project}
	} else {
		query = "SELECT EXISTS (SELECT 1 FROM lexicons WHERE project = ? AND version = ?)"
		args = []interface{}{project, version}
	}
	var exists bool
	if err := s.db.QueryRow(query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking for %s: %w", spec, err)
	}
	return exists, nil
}

// Find returns the installed lexicon matching spec. A bare project id is
// accepted when exactly one version of that project is installed.
func (s *Store) Find(spec string) (Info, error) {
	project, version, _ := strings.Cut(spec, ":")
	query := `SELECT lexicon_id, project, version, label, language,
		coalesce(email, ''), coalesce(license, ''), coalesce(url, ''), coalesce(citation, '')
		FROM lexicons WHERE project = ?`
	args := []interface{}{project}
	if version != "" {
		query += " AND version = ?"
		args = append(args, version)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return Info{}, fmt.Errorf("looking up %s: %w", spec, err)
	}
	defer rows.Close()

	var found []Info
	for rows.Next() {
		var in Info
		if err := rows.Scan(&in.ID, &in.Project, &in.Version, &in.Label, &in.Language,
			&in.Email, &in.License, &in.URL, &in.Citation); err != nil {
			return Info{}, fmt.Errorf("scanning lexicon row: %w", err)
		}
		found = append(found, in)
	}
	if err := rows.Err(); err != nil {
		return Info{}, err
	}
	switch len(found) {
	case 0:
		return Info{}, fmt.Errorf("lexicon %s is not installed", spec)
	case 1:
		return found[0], nil
	default:
		return Info{}, fmt.Errorf("lexicon specifier %s matches %d installed versions", spec, len(found))
	}
}

// Lexicons lists every installed lexicon.
func (s *Store) Lexicons() ([]Info, error) {
	rows, err := s.db.Query(`SELECT lexicon_id, project, version, label, language,
		coalesce(email, ''), coalesce(license, ''), coalesce(url, ''), coalesce(citation, '')
		FROM lexicons ORDER BY project, version`)
	if err != nil {
		return nil, fmt.Errorf("listing lexicons: %w", err)
	}
	defer rows.Close()

	var lexicons []Info
	for rows.Next() {
		var in Info
		if err := rows.Scan(&in.ID, &in.Project, &in.Version, &in.Label, &in.Language,
			&in.Email, &in.License, &in.URL, &in.Citation); err != nil {
			return nil, fmt.Errorf("scanning lexicon row: %w", err)
		}
		lexicons = append(lexicons, in)
	}
	return lexicons, rows.Err()
}

// Counts returns how many entries, senses and synsets a lexicon holds.
func (s *Store) Counts(lex Info) (entries, senses, synsets int, err error) {
	row := s.db.QueryRow(`SELECT
		(SELECT count(*) FROM entries WHERE lexicon_id = ?),
		(SELECT count(*) FROM senses WHERE lexicon_id = ?),
		(SELECT count(*) FROM synsets WHERE lexicon_id = ?)`,
		lex.ID, lex.ID, lex.ID)
	if err := row.Scan(&entries, &senses, &synsets); err != nil {
		return 0, 0, 0, fmt.Errorf("counting %s: %w", lex.Spec(), err)
	}
	return entries, senses, synsets, nil
}

// Import stores every lexicon of a parsed resource. Importing a
// project/version pair that is already installed is an error.
func (s *Store) Import(res *lmf.Resource) error {
	for i := range res.Lexicons {
		if err := s.importLexicon(&res.Lexicons[i], res.LMFVersion); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) importLexicon(lex *lmf.Lexicon, lmfVersion string) error {
	installed, err := s.Has(lex.ID + ":" + lex.Version)
	if err != nil {
		return err
	}
	if installed {
		return fmt.Errorf("lexicon %s:%s is already installed", lex.ID, lex.Version)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO lexicons
		(project, version, label, language, email, license, url, citation, lmf_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lex.ID, lex.Version, lex.Label, lex.Language, lex.Email, lex.License,
		lex.URL, lex.Citation, lmfVersion)
	if err != nil {
		return fmt.Errorf("inserting lexicon %s: %w", lex.ID, err)
	}
	lexiconID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting lexicon ID: %w", err)
	}

	entryStmt, err := tx.Prepare("INSERT INTO entries (lexicon_id, entry_id, written_form, part_of_speech) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer entryStmt.Close()
	senseStmt, err := tx.Prepare("INSERT INTO senses (lexicon_id, sense_id, entry_id, synset_id, identifier, ord) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing sense insert: %w", err)
	}
	defer senseStmt.Close()
	senseRelStmt, err := tx.Prepare("INSERT INTO sense_relations (lexicon_id, source_id, rel_type, target_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing sense relation insert: %w", err)
	}
	defer senseRelStmt.Close()

	for i := range lex.Entries {
		entry := &lex.Entries[i]
		if _, err := entryStmt.Exec(lexiconID, entry.ID, entry.Lemma.WrittenForm, entry.Lemma.PartOfSpeech); err != nil {
			return fmt.Errorf("inserting entry %s: %w", entry.ID, err)
		}
		for ord, sense := range entry.Senses {
			identifier := sql.NullString{String: sense.Identifier, Valid: sense.Identifier != ""}
			if _, err := senseStmt.Exec(lexiconID, sense.ID, entry.ID, sense.Synset, identifier, ord); err != nil {
				return fmt.Errorf("inserting sense %s: %w", sense.ID, err)
			}
			for _, rel := range sense.Relations {
				if _, err := senseRelStmt.Exec(lexiconID, sense.ID, rel.RelType, rel.Target); err != nil {
					return fmt.Errorf("inserting sense relation from %s: %w", sense.ID, err)
				}
			}
		}
	}

	synsetStmt, err := tx.Prepare("INSERT INTO synsets (lexicon_id, synset_id, ili, part_of_speech, members) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing synset insert: %w", err)
	}
	defer synsetStmt.Close()
	defStmt, err := tx.Prepare("INSERT INTO definitions (lexicon_id, synset_id, definition) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing definition insert: %w", err)
	}
	defer defStmt.Close()
	synsetRelStmt, err := tx.Prepare("INSERT INTO synset_relations (lexicon_id, source_id, rel_type, target_id) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing synset relation insert: %w", err)
	}
	defer synsetRelStmt.Close()

	for i := range lex.Synsets {
		ss := &lex.Synsets[i]
		if _, err := synsetStmt.Exec(lexiconID, ss.ID, ss.ILI, ss.PartOfSpeech, strings.Join(ss.Members, " ")); err != nil {
			return fmt.Errorf("inserting synset %s: %w", ss.ID, err)
		}
		for _, def := range ss.Definitions {
			if _, err := defStmt.Exec(lexiconID, ss.ID, def); err != nil {
				return fmt.Errorf("inserting definition for %s: %w", ss.ID, err)
			}
		}
		for _, rel := range ss.Relations {
			if _, err := synsetRelStmt.Exec(lexiconID, ss.ID, rel.RelType, rel.Target); err != nil {
				return fmt.Errorf("inserting synset relation from %s: %w", ss.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import of %s: %w", lex.ID, err)
	}
	return nil
}

// SenseIdentifiers returns the external-identifier to sense-id map of a
// lexicon. Identifiers attached to more than one sense are excluded from
// the map and reported separately; a caller must never guess between
// the senses of an ambiguous identifier.
func (s *Store) SenseIdentifiers(lex Info) (map[string]string, []string, error) {
	rows, err := s.db.Query(
		"SELECT identifier, sense_id FROM senses WHERE lexicon_id = ? AND identifier IS NOT NULL AND identifier != ''",
		lex.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying sense identifiers: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]string)
	ambiguous := make(map[string]bool)
	for rows.Next() {
		var identifier, senseID string
		if err := rows.Scan(&identifier, &senseID); err != nil {
			return nil, nil, fmt.Errorf("scanning sense identifier: %w", err)
		}
		if ambiguous[identifier] {
			continue
		}
		if _, seen := ids[identifier]; seen {
			delete(ids, identifier)
			ambiguous[identifier] = true
			continue
		}
		ids[identifier] = senseID
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var dups []string
	for identifier := range ambiguous {
		dups = append(dups, identifier)
	}
	sort.Strings(dups)
	return ids, dups, nil
}

// SenseIDs returns every sense id of a lexicon.
func (s *Store) SenseIDs(lex Info) ([]string, error) {
	rows, err := s.db.Query("SELECT sense_id FROM senses WHERE lexicon_id = ?", lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying sense ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning sense id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SenseExists reports whether a sense id belongs to the lexicon.
func (s *Store) SenseExists(lex Info, senseID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM senses WHERE lexicon_id = ? AND sense_id = ?)",
		lex.ID, senseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking sense %s: %w", senseID, err)
	}
	return exists, nil
}

// HasSenseRelation reports whether the lexicon already stores the given
// relation edge.
func (s *Store) HasSenseRelation(lex Info, sourceID, relType, targetID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM sense_relations WHERE lexicon_id = ? AND source_id = ? AND rel_type = ? AND target_id = ?)",
		lex.ID, sourceID, relType, targetID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking sense relation: %w", err)
	}
	return exists, nil
}

// Export reads a lexicon's full content back out of the store. Entries
// and synsets come out sorted by id, senses in their original order
// within each entry.
func (s *Store) Export(lex Info) (*lmf.Lexicon, error) {
	out := &lmf.Lexicon{
		ID:       lex.Project,
		Label:    lex.Label,
		Language: lex.Language,
		Email:    lex.Email,
		License:  lex.License,
		Version:  lex.Version,
		URL:      lex.URL,
		Citation: lex.Citation,
	}

	senseRels, err := s.relationsBySource(lex, "sense_relations")
	if err != nil {
		return nil, err
	}
	synsetRels, err := s.relationsBySource(lex, "synset_relations")
	if err != nil {
		return nil, err
	}

	senses := make(map[string][]lmf.Sense)
	rows, err := s.db.Query(
		"SELECT entry_id, sense_id, synset_id, coalesce(identifier, '') FROM senses WHERE lexicon_id = ? ORDER BY entry_id, ord",
		lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying senses: %w", err)
	}
	for rows.Next() {
		var entryID string
		var sense lmf.Sense
		if err := rows.Scan(&entryID, &sense.ID, &sense.Synset, &sense.Identifier); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning sense: %w", err)
		}
		sense.Relations = senseRels[sense.ID]
		senses[entryID] = append(senses[entryID], sense)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(
		"SELECT entry_id, written_form, part_of_speech FROM entries WHERE lexicon_id = ? ORDER BY entry_id",
		lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	for rows.Next() {
		var entry lmf.Entry
		if err := rows.Scan(&entry.ID, &entry.Lemma.WrittenForm, &entry.Lemma.PartOfSpeech); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entry.Senses = senses[entry.ID]
		out.Entries = append(out.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	definitions := make(map[string][]string)
	rows, err = s.db.Query(
		"SELECT synset_id, definition FROM definitions WHERE lexicon_id = ? ORDER BY rowid",
		lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying definitions: %w", err)
	}
	for rows.Next() {
		var synsetID, def string
		if err := rows.Scan(&synsetID, &def); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning definition: %w", err)
		}
		definitions[synsetID] = append(definitions[synsetID], def)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.Query(
		"SELECT synset_id, coalesce(ili, ''), coalesce(part_of_speech, ''), coalesce(members, '') FROM synsets WHERE lexicon_id = ? ORDER BY synset_id",
		lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying synsets: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ss lmf.Synset
		var members string
		if err := rows.Scan(&ss.ID, &ss.ILI, &ss.PartOfSpeech, &members); err != nil {
			return nil, fmt.Errorf("scanning synset: %w", err)
		}
		ss.Members = strings.Fields(members)
		ss.Definitions = definitions[ss.ID]
		ss.Relations = synsetRels[ss.ID]
		out.Synsets = append(out.Synsets, ss)
	}
	return out, rows.Err()
}

func (s *Store) relationsBySource(lex Info, table string) (map[string][]lmf.Relation, error) {
	rows, err := s.db.Query(
		fmt.Sprintf("SELECT source_id, rel_type, target_id FROM %s WHERE lexicon_id = ? ORDER BY rowid", table),
		lex.ID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	rels := make(map[string][]lmf.Relation)
	for rows.Next() {
		var source string
		var rel lmf.Relation
		if err := rows.Scan(&source, &rel.RelType, &rel.Target); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rels[source] = append(rels[source], rel)
	}
	return rels, rows.Err()
}
