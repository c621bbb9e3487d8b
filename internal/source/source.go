// Package source defines the record source boundary: where the catalog
// obtains its raw, unnormalized service records.
package source

import (
	"context"
	"errors"

	"github.com/lustraclean/vitrine/pkg/models"
)

// ErrEmptyResult indicates the source answered but returned zero records.
var ErrEmptyResult = errors.New("source: empty result")

// RecordSource produces the raw service records for the catalog.
// Implementations live at the network boundary and may fail; callers are
// expected to degrade to the fallback set.
type RecordSource interface {
	FetchRecords(ctx context.Context) ([]models.RawServiceRecord, error)
}

// Func adapts a plain function to the RecordSource interface.
type Func func(ctx context.Context) ([]models.RawServiceRecord, error)

// FetchRecords calls f.
func (f Func) FetchRecords(ctx context.Context) ([]models.RawServiceRecord, error) {
	return f(ctx)
}
