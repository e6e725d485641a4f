package wfcstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/overwave-systems/overwave/internal/wfc"
)

// ErrCatalogNotFound indicates a lookup by name found no matching catalog.
var ErrCatalogNotFound = errors.New("wfcstore: catalog not found")

// ErrCatalogExists indicates SaveCatalog was called with a name already taken.
var ErrCatalogExists = errors.New("wfcstore: catalog name already exists")

// CatalogMeta describes the extraction configuration a stored catalog was
// built under, alongside the catalog itself.
type CatalogMeta struct {
	ID              int64
	Name            string
	PatternSize     int
	UseCenterFilter bool
}

// SaveCatalog persists a catalog and its patterns under name. Returns
// ErrCatalogExists if the name is already taken.
func (s *Store) SaveCatalog(name string, patternSize int, useCenterFilter bool, cat *wfc.Catalog) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("wfcstore: catalog name cannot be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("wfcstore: begin transaction: %w", err)
	}
	defer tx.Rollback()

	centerFlag := 0
	if useCenterFilter {
		centerFlag = 1
	}

	insertCatalog := s.qb.BuildWithReturning(
		"INSERT INTO wfc_catalogs (name, pattern_size, use_center_filter) VALUES (?, ?, ?)", "id")

	var catalogID int64
	if s.dialect.SupportsLastInsertID() {
		result, err := tx.Exec(insertCatalog, name, patternSize, centerFlag)
		if err != nil {
			if s.dialect.IsDuplicateKeyError(err) {
				return 0, ErrCatalogExists
			}
			return 0, fmt.Errorf("wfcstore: insert catalog: %w", err)
		}
		catalogID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("wfcstore: get catalog id: %w", err)
		}
	} else {
		err := tx.QueryRow(insertCatalog, name, patternSize, centerFlag).Scan(&catalogID)
		if err != nil {
			if s.dialect.IsDuplicateKeyError(err) {
				return 0, ErrCatalogExists
			}
			return 0, fmt.Errorf("wfcstore: insert catalog: %w", err)
		}
	}

	insertPattern := s.qb.Build(
		"INSERT INTO wfc_patterns (catalog_id, pattern_index, size, cells, weight) VALUES (?, ?, ?, ?, ?)")
	for i, p := range cat.Patterns {
		if _, err := tx.Exec(insertPattern, catalogID, i, p.Size, cellsToString(p.Cells()), cat.Weights[i]); err != nil {
			return 0, fmt.Errorf("wfcstore: insert pattern %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("wfcstore: commit: %w", err)
	}
	return catalogID, nil
}

// LoadCatalog retrieves a previously saved catalog by name, rehydrating
// its patterns in their original index order.
func (s *Store) LoadCatalog(name string) (*wfc.Catalog, CatalogMeta, error) {
	var meta CatalogMeta
	var centerFlag int
	row := s.db.QueryRow(s.qb.Build(
		"SELECT id, name, pattern_size, use_center_filter FROM wfc_catalogs WHERE name = ?"), name)
	if err := row.Scan(&meta.ID, &meta.Name, &meta.PatternSize, &centerFlag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, CatalogMeta{}, ErrCatalogNotFound
		}
		return nil, CatalogMeta{}, fmt.Errorf("wfcstore: load catalog: %w", err)
	}
	meta.UseCenterFilter = centerFlag != 0

	rows, err := s.db.Query(s.qb.Build(
		"SELECT pattern_index, size, cells, weight FROM wfc_patterns WHERE catalog_id = ? ORDER BY pattern_index"),
		meta.ID)
	if err != nil {
		return nil, CatalogMeta{}, fmt.Errorf("wfcstore: load patterns: %w", err)
	}
	defer rows.Close()

	cat := &wfc.Catalog{}
	for rows.Next() {
		var index, size, weight int
		var cellsStr string
		if err := rows.Scan(&index, &size, &cellsStr, &weight); err != nil {
			return nil, CatalogMeta{}, fmt.Errorf("wfcstore: scan pattern: %w", err)
		}
		p, err := wfc.NewPattern(size, stringToCells(cellsStr))
		if err != nil {
			return nil, CatalogMeta{}, fmt.Errorf("wfcstore: rebuild pattern %d: %w", index, err)
		}
		cat.Patterns = append(cat.Patterns, p)
		cat.Weights = append(cat.Weights, weight)
	}
	if cat.Len() == 0 {
		return nil, CatalogMeta{}, ErrCatalogNotFound
	}
	return cat, meta, nil
}

// ListCatalogNames returns every stored catalog's name.
func (s *Store) ListCatalogNames() ([]string, error) {
	rows, err := s.db.Query("SELECT name FROM wfc_catalogs ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("wfcstore: list catalogs: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("wfcstore: scan catalog name: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}

func cellsToString(cells []wfc.Tile) string {
	buf := make([]rune, len(cells))
	for i, t := range cells {
		buf[i] = rune(t)
	}
	return string(buf)
}

func stringToCells(s string) []wfc.Tile {
	runes := []rune(s)
	cells := make([]wfc.Tile, len(runes))
	for i, r := range runes {
		cells[i] = wfc.Tile(r)
	}
	return cells
}
