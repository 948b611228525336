package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// CoercedBool is a boolean body field that also accepts the common
// non-boolean spellings clients send: numbers (non-zero is true), and strings
// such as "true", "1", "t", "false", "0", "f". Null, an absent field and the
// empty string decode as false.
type CoercedBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *CoercedBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*b = v != 0
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			*b = false
			return nil
		}
		raw = strings.TrimSpace(v)
	}

	parsed, err := cast.ToBoolE(raw)
	if err != nil {
		return fmt.Errorf("cannot interpret %s as a boolean", string(data))
	}
	*b = CoercedBool(parsed)
	return nil
}

// Bool returns the plain boolean value.
func (b CoercedBool) Bool() bool {
	return bool(b)
}
