package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ShortLen is the number of id characters shown by default.
const ShortLen = 8

// ID identifies a record within its kind.
type ID string

func (id ID) String() string {
	return string(id)
}

// Short returns the display prefix of the id.
func (id ID) Short() string {
	if len(id) <= ShortLen {
		return string(id)
	}
	return string(id[:ShortLen])
}

// UnmarshalJSON accepts string ids and the numeric millisecond ids written
// by the browser version of the page.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("record: invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}
