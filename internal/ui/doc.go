// Package ui contains the Bubble Tea program that drives the status bar.
//
// Model.Update is the only place component state changes. Every tea.Msg is
// routed through a typed handler registry:
//   - tickMsg updates every component, renders the left, middle and right
//     regions and stores the frame together with its click areas. The tick
//     re-arms itself with tea.Tick.
//   - backendEventMsg carries a reload signal from the configuration watcher.
//     The component set is rebuilt atomically and nothing is rendered until
//     the next tick.
//   - tea.KeyMsg quits on esc, q or ctrl+c.
//   - tea.MouseMsg resolves a left press against the click areas of the
//     current frame and hands the target to the command bus, which runs the
//     window-manager action as a tea.Cmd off the loop.
package ui
