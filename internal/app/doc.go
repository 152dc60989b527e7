// Package app is the composition root of wyrm.
//
// # Overview
//
// Run loads the configuration, installs the in-process log sink as the
// default slog handler, builds one seeker client per configured seeker and
// opens the description cache. It then starts the Collector and blocks in the
// terminal UI until the user quits or finishes with marked items.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        read ~/.config/wyrm/config.toml
//	       ├─────> logsink.New()        slog records feed the log view
//	       ├─────> seeker.NewClient()   one per configured seeker
//	       ├─────> cache.Open()         optional; failures only warn
//	       ├─────> Collector.Start()    searches in the background
//	       └─────> ui.Program.Run()     blocks until quit or done
//
// # Collector
//
// Each seeker is searched on its own goroutine. Failed searches are retried
// with exponential backoff a few times before the seeker is given up on.
// Results that do not match the query at the configured accuracy are dropped,
// the rest are appended to the shared item.Store and the UI is notified.
//
// # Errors
//
// Config and seeker URL problems fail Run before the UI starts. Anything that
// goes wrong afterwards is logged and shows up in the log view.
package app
