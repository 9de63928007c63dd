package services

import (
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"

	"github.com/samber/lo"
)

// DriverTask is one routable work unit in a driver's task list. A multi-parcel
// consolidation collapses into a single task carrying every member's tracking
// code; a standalone parcel is its own task.
type DriverTask struct {
	// ShipmentID is set when the task represents a consolidated shipment.
	ShipmentID *kernel.UUID

	// ShipmentCode is the shipment's internal code, empty for standalone parcels.
	ShipmentCode string

	// TrackingCodes lists the member parcels' internal tracking codes in
	// first-seen order.
	TrackingCodes []string

	// Count is len(TrackingCodes), surfaced for display.
	Count int
}

// TaskGrouper folds parcels on the active delivery track into the minimal
// set of routable units a driver sees.
type TaskGrouper struct{}

// NewTaskGrouper creates a TaskGrouper.
func NewTaskGrouper() TaskGrouper {
	return TaskGrouper{}
}

// GroupTasks builds the driver task list from the parcels assigned to the
// driver's zone and the shipments they may belong to.
//
// Rules:
//   - Only parcels in an active delivery status are considered.
//   - Parcels sharing a live shipment fold into one task; the first
//     occurrence creates the entry and later members append to it.
//   - Shipments already delivered are skipped entirely, even when stale
//     parcel rows still reference them.
//   - Parcels without a parent shipment get one task each.
func (TaskGrouper) GroupTasks(parcels []*parcel.Parcel, shipments []*shipment.Shipment) []DriverTask {
	active := lo.Filter(parcels, func(p *parcel.Parcel, _ int) bool {
		return p.Status().IsActiveDelivery()
	})

	byID := lo.KeyBy(shipments, func(s *shipment.Shipment) string {
		return s.ID().String()
	})

	tasks := make([]DriverTask, 0, len(active))
	taskIdx := make(map[string]int)

	for _, p := range active {
		if sid := p.ShipmentID(); sid != nil {
			sh, ok := byID[sid.String()]
			if !ok || sh.Status().IsDelivered() {
				continue
			}

			if i, seen := taskIdx[sid.String()]; seen {
				tasks[i].TrackingCodes = append(tasks[i].TrackingCodes, p.TrackingCode())
				tasks[i].Count++
				continue
			}

			id := *sid
			taskIdx[sid.String()] = len(tasks)
			tasks = append(tasks, DriverTask{
				ShipmentID:    &id,
				ShipmentCode:  sh.Code(),
				TrackingCodes: []string{p.TrackingCode()},
				Count:         1,
			})
			continue
		}

		tasks = append(tasks, DriverTask{
			TrackingCodes: []string{p.TrackingCode()},
			Count:         1,
		})
	}

	return tasks
}
