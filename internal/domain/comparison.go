package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedComparison — закладка на сравнение объектов.
// Хранит только упорядоченный набор идентификаторов, результат
// пересчитывается при каждом чтении по актуальным данным.
type SavedComparison struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	PropertyIDs []uuid.UUID
	CreatedAt   time.Time
}
