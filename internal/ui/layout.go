package ui

import "time"

// Card geometry in terminal cells.
const (
	// CardWidth is the inner width of a card, excluding its border.
	CardWidth = 26

	// PreviewHeight is the number of half-block lines above the caption.
	PreviewHeight = 7

	// cardTextLines holds title, author and the favorite toggle.
	cardTextLines = 3

	// cardGap separates columns.
	cardGap = 1

	cardOuterWidth  = CardWidth + 2
	cardOuterHeight = PreviewHeight + cardTextLines + 2
)

// chromeHeight is the header, command bar and footer.
const chromeHeight = 3

// Timing constants.
const (
	// statusTTL is how long a transient status message stays in the footer.
	statusTTL = 4 * time.Second

	// persistTimeout bounds kv writes made from key handlers.
	persistTimeout = 2 * time.Second
)

// gridColumns returns how many cards fit side by side in width cells.
func gridColumns(width int) int {
	cols := (width + cardGap) / (cardOuterWidth + cardGap)
	return max(cols, 1)
}
