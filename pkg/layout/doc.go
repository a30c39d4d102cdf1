// Package layout computes where device configuration lives inside the
// persistent store.
//
// The store starts with fixed system records followed by the
// communication-object table and the parameter table:
//
//	offset 0        device flags (0xFF = factory settings)
//	offset 1..2     bus address (hi, lo)
//	offset 3..      object table, 3 bytes per object (addr hi, addr lo, settings)
//	after table     parameters, sized by the build's parameter size table
//	after params    free area for application use
//
// Parameter offsets are prefix sums over the size table and are recomputed on
// every access.
package layout
