// Package load fetches catalogs from schema sources.
//
// A Source lists and describes the objects of a remote catalog. DescribeAll
// drives a Source in fixed-size batches. Catalogs can be saved as snapshots
// and replayed through a CatalogSource.
package load

import (
	"context"
	"fmt"

	"github.com/pentops/log.go/log"

	"github.com/syssam/forcegen/schema"
)

// DefaultBatchSize is the maximum number of objects described per call.
const DefaultBatchSize = 100

// Source describes a remote catalog. Calls block on I/O and are neither
// retried nor timed out here; callers set policy through ctx.
type Source interface {
	// ObjectNames lists the names of every object in the catalog.
	ObjectNames(ctx context.Context) ([]string, error)
	// Describe returns the named objects in request order.
	Describe(ctx context.Context, names []string) ([]*schema.Object, error)
	// Caller returns the identity the source is accessed with.
	Caller(ctx context.Context) (*Caller, error)
}

// Caller identifies the user and organisation a catalog was fetched for.
// Generators forward it to selectors and writer providers unchanged.
type Caller struct {
	UserID           string `json:"userId,omitempty" yaml:"userId,omitempty" msgpack:"userId,omitempty"`
	UserName         string `json:"userName,omitempty" yaml:"userName,omitempty" msgpack:"userName,omitempty"`
	OrganizationID   string `json:"organizationId,omitempty" yaml:"organizationId,omitempty" msgpack:"organizationId,omitempty"`
	OrganizationName string `json:"organizationName,omitempty" yaml:"organizationName,omitempty" msgpack:"organizationName,omitempty"`
}

// DescribeAll describes every object of src, issuing one Describe call per
// batch of at most batchSize names. Results are concatenated in request
// order. A non-positive batchSize means DefaultBatchSize.
func DescribeAll(ctx context.Context, src Source, batchSize int) ([]*schema.Object, error) {
	names, err := src.ObjectNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	return DescribeBatched(ctx, src, names, batchSize)
}

// DescribeBatched describes the given names in batches of at most
// batchSize.
func DescribeBatched(ctx context.Context, src Source, names []string, batchSize int) ([]*schema.Object, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	objects := make([]*schema.Object, 0, len(names))
	for start := 0; start < len(names); start += batchSize {
		end := min(start+batchSize, len(names))
		log.WithFields(ctx, map[string]interface{}{
			"from":  start,
			"to":    end,
			"total": len(names),
		}).Debug("describing batch")
		batch, err := src.Describe(ctx, names[start:end])
		if err != nil {
			return nil, fmt.Errorf("describing objects %d-%d: %w", start, end, err)
		}
		objects = append(objects, batch...)
	}
	return objects, nil
}

// Catalog is a described catalog together with the caller it was described
// for.
type Catalog struct {
	Caller  *Caller          `json:"caller,omitempty" yaml:"caller,omitempty" msgpack:"caller,omitempty"`
	Objects []*schema.Object `json:"objects" yaml:"objects" msgpack:"objects"`
}

// Snapshot describes the whole catalog of src.
func Snapshot(ctx context.Context, src Source, batchSize int) (*Catalog, error) {
	caller, err := src.Caller(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching caller: %w", err)
	}
	objects, err := DescribeAll(ctx, src, batchSize)
	if err != nil {
		return nil, err
	}
	return &Catalog{Caller: caller, Objects: objects}, nil
}
