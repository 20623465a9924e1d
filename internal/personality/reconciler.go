package personality

import (
	"time"

	"github.com/google/uuid"

	"persona-match/internal/domain"
)

// Reconciler decide si un tipo recién calculado merece una nueva entrada de historial.
// No persiste nada: el llamador escribe la entrada devuelta.
type Reconciler struct {
	Now   func() time.Time
	NewID func() string
}

// NewReconciler usa reloj UTC y UUIDs aleatorios.
func NewReconciler() Reconciler {
	return Reconciler{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

// Reconcile devuelve una entrada nueva salvo que latest coincida exactamente con newType.
// latest nil significa que el usuario no tiene historial.
func (r Reconciler) Reconcile(
	userID string,
	newType domain.PersonalityType,
	scores domain.TraitScores,
	percentages domain.TraitPercentages,
	latest *domain.PersonalityType,
) (domain.PersonalityHistoryEntry, bool) {
	if latest != nil && *latest == newType {
		return domain.PersonalityHistoryEntry{}, false
	}
	now, newID := r.Now, r.NewID
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return domain.PersonalityHistoryEntry{
		ID:          newID(),
		UserID:      userID,
		Type:        newType,
		Scores:      scores,
		Percentages: percentages,
		UpdatedAt:   now(),
	}, true
}
