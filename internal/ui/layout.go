package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the filter panel is
	// stacked above the results instead of beside them.
	LayoutCompactWidth = 100

	// LayoutZipColumnWidth is the minimum width to show the zip column.
	LayoutZipColumnWidth = 70

	// filterPaneWidth is the fixed width of the filter panel in wide mode.
	filterPaneWidth = 34
)

// Activity log limits.
const (
	// ActivityLineLimit is the number of log lines read from the tail.
	ActivityLineLimit = 500
)

// Timing constants.
const (
	// ActivityRefreshInterval is how often the activity view rereads the log
	// while following.
	ActivityRefreshInterval = 2 * time.Second

	// RequestTimeout bounds one search, match or login round trip from the UI.
	RequestTimeout = 20 * time.Second
)
