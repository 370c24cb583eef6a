package cdb

import (
	"database/sql"

	"github.com/Ahmed-Sermani/pagerank/graph"
	"golang.org/x/xerrors"
)

// linkIterator is a graph.LinkIterator implementation for the cdb graph.
type linkIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedLink *graph.Link
}

func (i *linkIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	link := new(graph.Link)
	if i.lastErr = i.rows.Scan(&link.ID, &link.URL, &link.RetrievedAt); i.lastErr != nil {
		return false
	}
	link.RetrievedAt = link.RetrievedAt.UTC()
	i.latchedLink = link
	return true
}

func (i *linkIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *linkIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("link iterator: %w", err)
	}
	return nil
}

func (i *linkIterator) Link() *graph.Link { return i.latchedLink }

// edgeIterator is a graph.EdgeIterator implementation for the cdb graph.
type edgeIterator struct {
	rows        *sql.Rows
	lastErr     error
	latchedEdge *graph.Edge
}

func (i *edgeIterator) Next() bool {
	if i.lastErr != nil || !i.rows.Next() {
		return false
	}

	edge := new(graph.Edge)
	if i.lastErr = i.rows.Scan(&edge.ID, &edge.Src, &edge.Dst, &edge.UpdatedAt); i.lastErr != nil {
		return false
	}
	edge.UpdatedAt = edge.UpdatedAt.UTC()
	i.latchedEdge = edge
	return true
}

func (i *edgeIterator) Error() error {
	if i.lastErr != nil {
		return i.lastErr
	}
	return i.rows.Err()
}

func (i *edgeIterator) Close() error {
	if err := i.rows.Close(); err != nil {
		return xerrors.Errorf("edge iterator: %w", err)
	}
	return nil
}

func (i *edgeIterator) Edge() *graph.Edge { return i.latchedEdge }
