package usecase

import (
	"sort"

	"github.com/m-mizutani/goerr/v2"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
)

// UserLevels returns the levels where the employee appears in the
// assignment map, sorted ascending
func UserLevels(assignments map[types.Level][]types.EmployeeID, employeeID types.EmployeeID) []types.Level {
	var levels []types.Level
	for level, employees := range assignments {
		for _, id := range employees {
			if id == employeeID {
				levels = append(levels, level)
				break
			}
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	return levels
}

// MaxLevel returns the employee's maximal level, or 0 for "no level"
func MaxLevel(levels []types.Level) types.Level {
	var max types.Level
	for _, l := range levels {
		if l > max {
			max = l
		}
	}
	return max
}

// LowerLevelFieldIDs returns the fields answerable at level-1, the prior
// tier a level-≥2 submission must chain to
func LowerLevelFieldIDs(fields []model.Field, level types.Level) map[types.FieldID]bool {
	ids := make(map[types.FieldID]bool)
	for i := range fields {
		if fields[i].HasLevel(level - 1) {
			ids[fields[i].ID] = true
		}
	}
	return ids
}

// ValidatePriorityOrder reports whether order is exactly a permutation of
// 1..numLevels: no duplicates, no omissions, nothing outside the range
func ValidatePriorityOrder(order []types.Level, numLevels int) bool {
	if len(order) != numLevels {
		return false
	}
	seen := make(map[types.Level]bool, numLevels)
	for _, l := range order {
		if l < 1 || int(l) > numLevels || seen[l] {
			return false
		}
		seen[l] = true
	}
	return true
}

// CheckPriorityOrder is ValidatePriorityOrder as a precondition: an invalid
// order blocks form creation and edits
func CheckPriorityOrder(order []types.Level, numLevels int) error {
	if !ValidatePriorityOrder(order, numLevels) {
		return goerr.Wrap(ErrInvalidPriorityOrder, "priority order rejected",
			goerr.V("order", order), goerr.V("num_levels", numLevels))
	}
	return nil
}

// sessionLevels resolves the loaded session's levels from the loaded form
func (uc *UseCases) sessionLevels() []types.Level {
	if uc.content == nil || uc.session == nil {
		return nil
	}
	return UserLevels(uc.content.LevelAssignments, uc.session.EmployeeID)
}

func hasLevel(levels []types.Level, level types.Level) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}
