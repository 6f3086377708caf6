package record

// Todo is one entry of the todo list.
type Todo struct {
	ID        ID        `json:"id" toml:"id"`
	Text      string    `json:"text" toml:"text"`
	Completed bool      `json:"completed" toml:"completed"`
	CreatedAt Timestamp `json:"createdAt" toml:"createdAt"`
}

func (t Todo) Key() ID {
	return t.ID
}
