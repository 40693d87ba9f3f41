package domain

import (
	"time"

	"github.com/google/uuid"
)

// DatasetImport describes one completed replacement of the stored names.
type DatasetImport struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	RowCount   int       `json:"rowCount"`
	ImportedAt time.Time `json:"importedAt"`
}
