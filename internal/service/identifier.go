package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pim-sync/internal/store"
	"github.com/MKhiriev/go-pim-sync/models"
)

const generationSeparator = "."

// IdentifierMapper derives protocol-visible identifiers from item state
// slots. An identifier is the row id, a "."-separated slot generation when
// the slot has been reused, and the suffix of the current table instance.
// Identifiers issued before a rebuild never match rows created after it, and
// an identifier of a removed row never matches the row that reuses its slot.
type IdentifierMapper struct {
	states store.ItemStateRepository
	ids    store.IDGenerator
	suffix string
}

// NewIdentifierMapper returns a mapper over states. ids supplies the
// randomness of new table suffixes.
func NewIdentifierMapper(states store.ItemStateRepository, ids store.IDGenerator) *IdentifierMapper {
	return &IdentifierMapper{states: states, ids: ids}
}

// Load reads the suffix of the current table instance. If the table was
// never built it is built now and existed is false.
func (m *IdentifierMapper) Load(ctx context.Context) (existed bool, err error) {
	suffix, err := m.states.Suffix(ctx)
	if errors.Is(err, store.ErrStateNotFound) {
		return false, m.Rebuild(ctx)
	}
	if err != nil {
		return false, fmt.Errorf("load identifier suffix: %w", err)
	}

	m.suffix = suffix
	return true, nil
}

// Rebuild empties the item state table and starts a new instance with a
// fresh suffix.
func (m *IdentifierMapper) Rebuild(ctx context.Context) error {
	suffix := newSuffix(m.ids.Generate())
	if err := m.states.Rebuild(ctx, suffix); err != nil {
		return fmt.Errorf("rebuild item state table: %w", err)
	}

	m.suffix = suffix
	return nil
}

func (m *IdentifierMapper) Suffix() string {
	return m.suffix
}

// LocalID returns the identifier of row.
func (m *IdentifierMapper) LocalID(row models.ItemState) string {
	id := strconv.FormatInt(row.RowID, 10)
	if row.Generation > 0 {
		id += generationSeparator + strconv.FormatInt(row.Generation, 10)
	}
	return id + m.suffix
}

// Resolve inverts LocalID. Identifiers of another table instance are
// rejected with [ErrInvalidIdentifier].
func (m *IdentifierMapper) Resolve(localID string) (rowID, generation int64, err error) {
	if m.suffix == "" {
		return 0, 0, fmt.Errorf("%w: %q, no table loaded", ErrInvalidIdentifier, localID)
	}

	key, ok := strings.CutSuffix(localID, m.suffix)
	if !ok || key == "" {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, localID)
	}

	slot, gen, reused := strings.Cut(key, generationSeparator)
	rowID, err = strconv.ParseInt(slot, 10, 64)
	if err != nil || rowID <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, localID)
	}
	if reused {
		// generation 0 is never written out
		generation, err = strconv.ParseInt(gen, 10, 64)
		if err != nil || generation <= 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidIdentifier, localID)
		}
	}

	return rowID, generation, nil
}

// newSuffix keeps the last dash-separated group of id, which for a UUID is
// its random node part.
func newSuffix(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 {
		return id[i:]
	}
	return "-" + id
}
