package model

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by every store when the addressed record is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
)

// IDs is a list of entity ids rendered as json strings, snowflake ids overflow js numbers.
type IDs []int64

func (ids IDs) MarshalJSON() ([]byte, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return json.Marshal(out)
}

func (ids *IDs) UnmarshalJSON(b []byte) error {
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(IDs, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse id %q", s)
		}
		out = append(out, id)
	}
	*ids = out
	return nil
}

func (ids IDs) Contains(id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
