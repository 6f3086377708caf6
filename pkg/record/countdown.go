package record

// Countdown tracks the days left until (or since) a calendar date.
type Countdown struct {
	ID        ID        `json:"id" toml:"id"`
	Name      string    `json:"name" toml:"name"`
	Date      Date      `json:"date" toml:"date"`
	CreatedAt Timestamp `json:"createdAt" toml:"createdAt"`
}

func (c Countdown) Key() ID {
	return c.ID
}
