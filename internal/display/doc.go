// Package display owns the active overlay mode and renders it. State is the
// mode holder consumed by the trigger engine; Screen is the tcell terminal
// front end drawing the lesson strip and the blackout/whiteboard overlays.
// Headless runs use State alone.
package display
