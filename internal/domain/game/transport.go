package game

import "github.com/andrescamacho/stars-go/pkg/utils"

// UnloadAmount is how much a fleet holding held should drop at a
// destination that has atDestination of the same cargo.
func (t TransportTask) UnloadAmount(held, atDestination int) int {
	switch t.Action {
	case TransportUnloadAll:
		return held
	case TransportUnloadAmount:
		return utils.Min(t.Amount, held)
	case TransportSetAmountTo:
		return utils.Max(0, held-t.Amount)
	case TransportSetWaypointTo:
		return utils.Clamp(t.Amount-atDestination, 0, held)
	}
	return 0
}

// LoadAmount is how much a fleet should take from a source holding
// available. space is free hold space and capacity the whole hold.
func (t TransportTask) LoadAmount(held, available, space, capacity int) int {
	want := 0
	switch t.Action {
	case TransportLoadAll:
		want = available
	case TransportLoadAmount:
		want = t.Amount
	case TransportFillPercent, TransportWaitForPercent:
		want = capacity*t.Amount/100 - held
	case TransportSetAmountTo:
		want = t.Amount - held
	case TransportSetWaypointTo:
		want = available - t.Amount
	}
	return utils.Max(0, utils.Min3(want, available, space))
}

// Satisfied is false while a wait-for-percent load has not filled the hold.
func (t TransportTask) Satisfied(held, capacity int) bool {
	if t.Action != TransportWaitForPercent {
		return true
	}
	return held >= capacity*t.Amount/100
}
