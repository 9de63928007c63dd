package kernel

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Tracking-code prefixes for the two kinds of codes the warehouse issues.
const (
	parcelTrackingPrefix   = "CL"
	shipmentTrackingPrefix = "CS"
)

// NewParcelTrackingCode generates an internal tracking code for a parcel
// received at the warehouse, e.g. "CL-9F86D081C3A4".
func NewParcelTrackingCode() string {
	return newTrackingCode(parcelTrackingPrefix)
}

// NewShipmentTrackingCode generates an internal tracking code for an
// outbound shipment dispatched on the operator's own carrier,
// e.g. "CS-1B4F0E98512E".
func NewShipmentTrackingCode() string {
	return newTrackingCode(shipmentTrackingPrefix)
}

func newTrackingCode(prefix string) string {
	raw := uuid.New()
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(raw.String()[:8]+raw.String()[9:13]))
}
