package enums

// declaration of various enums for
// user data validation purposes

import (
	"github.com/orsinium-labs/enum"
)

type SearchMode enum.Member[string]

var (
	sm = enum.NewBuilder[string, SearchMode]()

	// fewest steps from the start point
	ModeSingle = sm.Add(SearchMode{"single"})
	// fewest steps from any lowest point
	ModeLowest = sm.Add(SearchMode{"lowest"})
	ModeBoth   = sm.Add(SearchMode{"both"})

	SearchModes = sm.Enum()
)

type LoggingLevel enum.Member[string]

var (
	ll = enum.NewBuilder[string, LoggingLevel]()

	LoggingLevelDebug = ll.Add(LoggingLevel{"debug"})
	LoggingLevelInfo  = ll.Add(LoggingLevel{"info"})
	LoggingLevelWarn  = ll.Add(LoggingLevel{"warn"})
	LoggingLevelError = ll.Add(LoggingLevel{"error"})

	LoggingLevels = ll.Enum()
)
