// Package ui is galleria's Bubble Tea front end.
//
// The Model owns the gallery.Controller: every trigger and every fetch
// result is applied from Update, so controller state is only ever touched
// by the program loop. Fetches run as tea.Cmd goroutines and come back as
// messages. Thumbnails and favorites file changes arrive the same way,
// through commands that wait on their channels.
//
// Layout, top to bottom: header (view, mode, page, counts), command bar
// (search input while focused), the scrollable card grid, and a footer with
// short help or a transient status. Help and photo detail are full-screen
// overlays.
package ui
