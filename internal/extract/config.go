// Package extract turns the typed rows of a worksheet into domain records.
//
// Every extractor is a fold: an accumulator struct consumes rows in order
// through step and yields its records from finish. Rows that do not fit a
// recognised shape are skipped, never reported.
package extract

// Config holds the tunables shared by the extractors.
type Config struct {
	// MinLedgerSerial is the earliest date serial a ledger entry may carry.
	// 44927 is 2023-01-01.
	MinLedgerSerial float64
	// ShareTolerance is the allowed deviation of the ownership share total
	// from 1.0 before a warning is raised.
	ShareTolerance float64
	// DescriptionMax caps descriptions, in runes.
	DescriptionMax int
}

// DefaultConfig returns the standard tunables.
func DefaultConfig() Config {
	return Config{
		MinLedgerSerial: 44927,
		ShareTolerance:  0.01,
		DescriptionMax:  100,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinLedgerSerial <= 0 {
		c.MinLedgerSerial = d.MinLedgerSerial
	}
	if c.ShareTolerance <= 0 {
		c.ShareTolerance = d.ShareTolerance
	}
	if c.DescriptionMax <= 0 {
		c.DescriptionMax = d.DescriptionMax
	}
	return c
}
