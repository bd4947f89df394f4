package medication

import (
	"sort"

	. "folio/internal/domain"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionType_AddDose     ActionType = "ADD_DOSE"
	ActionType_DeleteDose  ActionType = "DELETE_DOSE"
	ActionType_SetInterval ActionType = "SET_INTERVAL"
	ActionType_Load        ActionType = "LOAD"
	ActionType_ClearDoses  ActionType = "CLEAR_DOSES"
)

type Action struct {
	Type          ActionType
	Dose          Dose
	DoseID        uuid.UUID
	IntervalHours Hours
	State         MedicationState
}

func AddDose(d Dose) Action {
	return Action{Type: ActionType_AddDose, Dose: d}
}

func DeleteDose(id uuid.UUID) Action {
	return Action{Type: ActionType_DeleteDose, DoseID: id}
}

func SetInterval(hours Hours) Action {
	return Action{Type: ActionType_SetInterval, IntervalHours: hours}
}

func Load(s MedicationState) Action {
	return Action{Type: ActionType_Load, State: s}
}

func ClearDoses() Action {
	return Action{Type: ActionType_ClearDoses}
}

func InitialState() MedicationState {
	return MedicationState{
		Doses:         []Dose{},
		IntervalHours: DefaultDoseInterval,
	}
}

func sortNewestFirst(doses []Dose) {
	sort.SliceStable(doses, func(i, j int) bool {
		return doses[i].TakenAt.After(doses[j].TakenAt)
	})
}

// Reduce returns the next state. the input state is
// never modified
func Reduce(state MedicationState, action Action) MedicationState {
	doses := make([]Dose, len(state.Doses))
	copy(doses, state.Doses)
	next := MedicationState{
		Doses:         doses,
		IntervalHours: state.IntervalHours,
	}

	switch action.Type {
	case ActionType_AddDose:
		for _, d := range next.Doses {
			if d.ID == action.Dose.ID {
				return next
			}
		}
		next.Doses = append(next.Doses, action.Dose)
		sortNewestFirst(next.Doses)

	case ActionType_DeleteDose:
		kept := make([]Dose, 0, len(next.Doses))
		for _, d := range next.Doses {
			if d.ID != action.DoseID {
				kept = append(kept, d)
			}
		}
		next.Doses = kept

	case ActionType_SetInterval:
		if action.IntervalHours > 0 {
			next.IntervalHours = action.IntervalHours
		}

	case ActionType_Load:
		next.Doses = make([]Dose, len(action.State.Doses))
		copy(next.Doses, action.State.Doses)
		sortNewestFirst(next.Doses)
		next.IntervalHours = action.State.IntervalHours
		if next.IntervalHours <= 0 {
			next.IntervalHours = DefaultDoseInterval
		}

	case ActionType_ClearDoses:
		next.Doses = []Dose{}
	}

	return next
}
