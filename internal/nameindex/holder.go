package nameindex

import (
	"sync/atomic"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// Holder publishes the active Index snapshot. Readers never block: a request
// that obtained a snapshot keeps using it even after a Swap.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder returns an empty Holder. Current fails until the first Swap.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the active snapshot or domain.ErrIndexUnavailable.
func (h *Holder) Current() (*Index, error) {
	idx := h.current.Load()
	if idx == nil {
		return nil, domain.ErrIndexUnavailable
	}
	return idx, nil
}

// Swap makes idx the active snapshot and returns the previous one (nil on the
// first call).
func (h *Holder) Swap(idx *Index) *Index {
	return h.current.Swap(idx)
}

// Loaded reports whether a snapshot has been published.
func (h *Holder) Loaded() bool {
	return h.current.Load() != nil
}
