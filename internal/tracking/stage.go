// Package tracking simulates delivery progress for a single order on the
// client side. Stage derivation is pure; Simulator drives it on a schedule
// and persists the session between runs.
package tracking

import "github.com/polkiloo/rype/internal/domain/model"

// Stage is a step of the visual delivery timeline.
type Stage int

const (
	StagePlaced Stage = iota
	StagePreparing
	StageQualityCheck
	StageOutForDelivery
	StageDelivered
)

var stageNames = [...]string{
	StagePlaced:         "Order Placed",
	StagePreparing:      "Preparing",
	StageQualityCheck:   "Quality Check",
	StageOutForDelivery: "Out for Delivery",
	StageDelivered:      "Delivered",
}

// thresholds holds the elapsed minutes at which each stage starts.
var thresholds = [...]int{
	StagePlaced:         0,
	StagePreparing:      2,
	StageQualityCheck:   5,
	StageOutForDelivery: 8,
	StageDelivered:      15,
}

func (s Stage) String() string {
	if s < StagePlaced || s > StageDelivered {
		return "Unknown"
	}
	return stageNames[s]
}

// Threshold returns the elapsed minutes at which s begins.
func (s Stage) Threshold() int {
	if s < StagePlaced {
		return 0
	}
	if s > StageDelivered {
		s = StageDelivered
	}
	return thresholds[s]
}

// StageForStatus maps a server-side order status to its timeline stage.
// Cancelled and unknown statuses have no stage.
func StageForStatus(status model.OrderStatus) (Stage, bool) {
	switch status {
	case model.OrderStatusPending:
		return StagePlaced, true
	case model.OrderStatusPreparing:
		return StagePreparing, true
	case model.OrderStatusQualityCheck:
		return StageQualityCheck, true
	case model.OrderStatusOutForDelivery:
		return StageOutForDelivery, true
	case model.OrderStatusDelivered:
		return StageDelivered, true
	default:
		return StagePlaced, false
	}
}

// DeriveStage returns the stage for elapsed minutes. A known status takes
// precedence over time.
func DeriveStage(elapsedMinutes int, status *model.OrderStatus) Stage {
	if status != nil {
		if stage, ok := StageForStatus(*status); ok {
			return stage
		}
	}
	stage := StagePlaced
	for s := StagePlaced; s <= StageDelivered; s++ {
		if elapsedMinutes >= thresholds[s] {
			stage = s
		}
	}
	return stage
}
