// Package face is the geometry engine of the analog watch face.
//
// It turns a wall-clock time into integer hand angles, hand endpoints on a
// small display, a precomputed tick and second-hand table, an entrance
// animation that grows the hands from the center, a shadow layer and a
// date label placement that dodges the hands.
//
// The package does no I/O. Pixels and text go through the Surface and
// TextSurface interfaces; haptics through Alerter. A Face is single-owner:
// every method must be called from the task that created it.
package face
