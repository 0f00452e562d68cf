// Package game implements the quadra board and its turn state machine.
//
// Allowed here:
// - board geometry, occupancy and the divider rule
// - cursor movement and wrap arithmetic
// - the command state machine and the turn rule extension point
//
// Not allowed here:
// - rendering, key handling or any other terminal concern
// - persistence of any kind
package game
