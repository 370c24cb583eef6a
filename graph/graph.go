/*
Link graph storage. A link graph is one of the places a corpus can be
loaded from; pages are identified by the link URL.
*/
package graph

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

// ErrUnknownEdgeLinks is returned when attempting to create an edge
// with an invalid source and/or destination ID
var ErrUnknownEdgeLinks = xerrors.New("unknown source and/or destination for edge")

type Iterator interface {
	// Next advances the iterator. If no more items are available or an
	// error occurs, calls to Next() return false.
	Next() bool
	Error() error
	Close() error
}

type Link struct {
	ID          uuid.UUID
	URL         string
	RetrievedAt time.Time
}

type LinkIterator interface {
	Iterator
	Link() *Link
}

type Edge struct {
	ID        uuid.UUID
	Src       uuid.UUID
	Dst       uuid.UUID
	UpdatedAt time.Time
}

type EdgeIterator interface {
	Iterator
	Edge() *Edge
}

// Graph is implemented by link graph stores.
type Graph interface {
	// UpsertLink creates a new link or updates an existing link with the
	// same URL. The link ID is populated on return.
	UpsertLink(*Link) error

	// UpsertEdge creates a new edge or refreshes an existing edge between
	// the same pair of links.
	UpsertEdge(*Edge) error

	// Links returns the links whose IDs fall in [fromID, toID) and were
	// retrieved before the provided time.
	Links(fromID, toID uuid.UUID, retrievedBefore time.Time) (LinkIterator, error)

	// Edges returns the edges whose source IDs fall in [fromID, toID) and
	// were updated before the provided time.
	Edges(fromID, toID uuid.UUID, updatedBefore time.Time) (EdgeIterator, error)
}

// MaxID is the exclusive upper bound used when iterating the whole link
// graph.
var MaxID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")
