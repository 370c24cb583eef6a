package cdb

import (
	"database/sql"
	"time"

	"github.com/Ahmed-Sermani/pagerank/graph"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/xerrors"
)

var _ graph.Graph = (*CockroachDBGraph)(nil)

const (
	schemaQuery = `
  CREATE TABLE IF NOT EXISTS links (
    id UUID NOT NULL DEFAULT gen_random_uuid() PRIMARY KEY,
    url STRING UNIQUE,
    retrieved_at TIMESTAMP
  );
  CREATE TABLE IF NOT EXISTS edges (
    id UUID NOT NULL DEFAULT gen_random_uuid() PRIMARY KEY,
    src UUID NOT NULL REFERENCES links(id) ON DELETE CASCADE,
    dst UUID NOT NULL REFERENCES links(id) ON DELETE CASCADE,
    updated_at TIMESTAMP,
    CONSTRAINT edge_links UNIQUE(src, dst)
  );
  `
	upsertLinkQuery = `
  INSERT INTO links (url, retrieved_at) VALUES ($1, $2)
  ON CONFLICT (url) DO UPDATE SET retrieved_at=GREATEST(links.retrieved_at, $2)
  RETURNING id, retrieved_at
  `
	upsertEdgeQuery = `
  INSERT INTO edges (src, dst, updated_at) VALUES ($1, $2, NOW())
  ON CONFLICT (src, dst) DO UPDATE SET updated_at=NOW()
  RETURNING id, updated_at
  `
	iterLinkQuery = `
  SELECT id, url, retrieved_at FROM links WHERE id >= $1 AND id < $2 AND retrieved_at < $3
  `
	iterEdgesQuery = `
  SELECT id, src, dst, updated_at FROM edges WHERE src >= $1 AND src < $2 AND updated_at < $3
  `
)

// CockroachDBGraph implements a link graph that persists its links and
// edges to a CockroachDB (or any PostgreSQL wire compatible) instance.
type CockroachDBGraph struct {
	db *sql.DB
}

// NewCockroachDBGraph returns a CockroachDBGraph instance that connects to
// the database identified by dsn.
func NewCockroachDBGraph(dsn string) (*CockroachDBGraph, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &CockroachDBGraph{db}, nil
}

// EnsureSchema creates the links and edges tables if they do not exist.
func (c *CockroachDBGraph) EnsureSchema() error {
	if _, err := c.db.Exec(schemaQuery); err != nil {
		return xerrors.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close terminates the connection to the backing database.
func (c *CockroachDBGraph) Close() error {
	return c.db.Close()
}

func (c *CockroachDBGraph) UpsertLink(link *graph.Link) error {
	row := c.db.QueryRow(upsertLinkQuery, link.URL, link.RetrievedAt.UTC())
	if err := row.Scan(&link.ID, &link.RetrievedAt); err != nil {
		return xerrors.Errorf("upsert link: %w", err)
	}
	link.RetrievedAt = link.RetrievedAt.UTC()
	return nil
}

func (c *CockroachDBGraph) UpsertEdge(edge *graph.Edge) error {
	row := c.db.QueryRow(upsertEdgeQuery, edge.Src, edge.Dst)
	if err := row.Scan(&edge.ID, &edge.UpdatedAt); err != nil {
		if isForeignKeyViolationError(err) {
			err = graph.ErrUnknownEdgeLinks
		}
		return xerrors.Errorf("upsert edge: %w", err)
	}
	edge.UpdatedAt = edge.UpdatedAt.UTC()
	return nil
}

func (c *CockroachDBGraph) Links(fromID, toID uuid.UUID, retrievedBefore time.Time) (graph.LinkIterator, error) {
	rows, err := c.db.Query(iterLinkQuery, fromID, toID, retrievedBefore.UTC())
	if err != nil {
		return nil, xerrors.Errorf("links: %w", err)
	}
	return &linkIterator{rows: rows}, nil
}

func (c *CockroachDBGraph) Edges(fromID, toID uuid.UUID, updatedBefore time.Time) (graph.EdgeIterator, error) {
	rows, err := c.db.Query(iterEdgesQuery, fromID, toID, updatedBefore.UTC())
	if err != nil {
		return nil, xerrors.Errorf("edges: %w", err)
	}
	return &edgeIterator{rows: rows}, nil
}

func isForeignKeyViolationError(err error) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return false
	}

	return pqErr.Code.Name() == "foreign_key_violation"
}
