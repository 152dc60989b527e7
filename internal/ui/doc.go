// Package ui provides the terminal user interface for wyrm.
//
// # Architecture Overview
//
// The UI is a bubbletea program whose model, the Compositor, owns three
// screens in a fixed arena:
//
//   - ListView: virtualized multi-column table over the shared item.Store,
//     with a cursor, a scroll window and a set of marked items
//   - DetailView: overlay for the selected item, shown in the rows freed by
//     compressing the list
//   - LogView: full-height overlay over the process log
//
// Focus is an index into the arena. The details and log overlays exclude
// each other; transitions that are not valid in the current state return
// false and the key falls through to the focused screen.
//
// # Painting
//
// Screens paint cell by cell into a Canvas. The frame canvas is an in-memory
// grid which is rendered with the active Theme's Lipgloss styles and handed to
// bubbletea as the view string. The footer (status bar plus controls) is
// drawn by the Compositor from the focused screen's FooterInfo and Controls.
//
// # Event Flow
//
//  1. Program.Run starts the bubbletea loop; Init starts draining the log
//     source
//  2. The collector calls Program.Update after appending results; the next
//     frame paints the grown store
//  3. Opening details starts the description fetch as a tea.Cmd. It writes
//     the result through the store's mutex and reports back with a message;
//     it is never cancelled when the overlay closes
//  4. enter hands back the marked items and quits; q quits with nothing
//
// # Key Bindings
//
//   - j/k, g/G: Move the cursor (list) or scroll (log)
//   - space: Mark the selected item (list), pause or follow new entries (log)
//   - l, h/esc: Open and close details
//   - tab: Toggle the log overlay
//   - d/u: Scroll the log newer/older
//   - T: Cycle theme
//   - enter: Take marked items
//   - q: Quit
package ui
