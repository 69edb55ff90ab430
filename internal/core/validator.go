package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/workgraph/internal/graph"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Validate runs every structural check against a proposed full snapshot and
// returns the first violation found. All checks operate on the whole
// snapshot, not just a changed item, since a dependency edit can create
// cycles spanning unrelated items. Mutators call Validate before any
// persistence, so a rejected mutation leaves the stored snapshot untouched.
func Validate(snap *models.Snapshot) error {
	if err := CheckReferences(snap); err != nil {
		return err
	}
	if err := CheckSelfReference(snap); err != nil {
		return err
	}
	if err := CheckAcyclic(snap); err != nil {
		return err
	}
	if err := CheckUrgentSingleton(snap); err != nil {
		return err
	}
	return nil
}

// CheckReferences verifies every dependency id refers to an existing item.
func CheckReferences(snap *models.Snapshot) error {
	for _, id := range snap.SortedIDs() {
		for _, dep := range snap.Items[id].Dependencies {
			if _, ok := snap.Items[dep]; !ok {
				return &models.ValidationError{
					Kind:   models.ValidationMissingDep,
					ItemID: id,
					Detail: fmt.Sprintf("dependency %s does not exist", dep),
				}
			}
		}
	}
	return nil
}

// CheckSelfReference verifies no item lists its own id as a dependency.
func CheckSelfReference(snap *models.Snapshot) error {
	for _, id := range snap.SortedIDs() {
		if snap.Items[id].DependsOn(id) {
			return &models.ValidationError{
				Kind:   models.ValidationSelfDep,
				ItemID: id,
				Detail: "item depends on itself",
			}
		}
	}
	return nil
}

// CheckAcyclic delegates to the graph engine's cycle detector. A detected
// cycle is returned with its full ordered path for diagnostics.
func CheckAcyclic(snap *models.Snapshot) error {
	if cycle := graph.Build(snap).DetectCycle(); cycle != nil {
		return &models.ValidationError{
			Kind:      models.ValidationCycle,
			ItemID:    cycle[0],
			Detail:    "dependency cycle detected",
			CyclePath: cycle,
		}
	}
	return nil
}

// CheckUrgentSingleton verifies at most one item carries the urgent flag.
// When two items hold it, the prior holder must be cleared explicitly; the
// Updater does this automatically before proposing a snapshot.
func CheckUrgentSingleton(snap *models.Snapshot) error {
	var holders []string
	for _, id := range snap.SortedIDs() {
		if snap.Items[id].Urgent {
			holders = append(holders, id)
		}
	}
	if len(holders) > 1 {
		return &models.ValidationError{
			Kind:   models.ValidationUrgentConflict,
			ItemID: holders[1],
			Detail: fmt.Sprintf("urgent is already held by %s; clear it first (holders: %s)", holders[0], strings.Join(holders, ", ")),
		}
	}
	return nil
}
