/*
Package timefmt renders order timestamps in the storefront's display format.

The rendered string is persisted with the order, not recomputed, so every
later consumer (customer order history, admin console) sees the original
wall-clock rendering. No timezone normalization is performed; instants are
rendered in the process-local zone.
*/
package timefmt

import "time"

// OrderLayout is the fixed display format for order timestamps,
// e.g. "24-Jul-2025 07:45 PM". Hours use a 12-hour clock with a
// leading zero; midnight renders as 12 AM.
const OrderLayout = "02-Jan-2006 03:04 PM"

// OrderTimestamp formats t using OrderLayout.
func OrderTimestamp(t time.Time) string {
	return t.Format(OrderLayout)
}

// Now renders the current instant using OrderLayout.
func Now() string {
	return OrderTimestamp(time.Now())
}
