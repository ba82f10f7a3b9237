package extraction

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The model does not always respect the declared types. These decoders
// accept the common deviations instead of failing the whole upload.

// FlexString accepts a string, number, boolean, list or null.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}

	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = FlexString(strings.TrimSpace(v))
	case '[':
		var items FlexStrings
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*s = FlexString(strings.Join(items, ", "))
	case '{':
		var compact bytes.Buffer
		if err := json.Compact(&compact, b); err != nil {
			return err
		}
		*s = FlexString(compact.String())
	default:
		*s = FlexString(string(b))
	}
	return nil
}

func (s FlexString) Ptr() *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

// FlexStrings accepts a list or a single scalar, which becomes a one
// element list. Empty entries are dropped.
type FlexStrings []string

func (l *FlexStrings) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = FlexStrings{}
		return nil
	}

	if b[0] != '[' {
		var single FlexString
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}
		if single == "" {
			*l = FlexStrings{}
		} else {
			*l = FlexStrings{string(single)}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(FlexStrings, 0, len(raw))
	for _, item := range raw {
		var v FlexString
		if err := json.Unmarshal(item, &v); err != nil {
			return err
		}
		if v != "" {
			out = append(out, string(v))
		}
	}
	*l = out
	return nil
}

func (l FlexStrings) Slice() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}

var firstInteger = regexp.MustCompile(`-?\d+`)

// FlexInt accepts a number, a numeric string such as "5" or "5+ years",
// or null. Anything without digits decodes to zero. Values are clamped to
// [0, math.MaxInt32] so they fit an INTEGER column.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		match := firstInteger.FindString(s)
		if match == "" {
			*n = 0
			return nil
		}
		// ParseFloat yields ±Inf with ErrRange on overflow, which clamps
		v, _ := strconv.ParseFloat(match, 64)
		*n = clampInt(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = clampInt(f)
	return nil
}

func clampInt(f float64) FlexInt {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	}
	return FlexInt(math.Trunc(f))
}

func (n FlexInt) Ptr() *int {
	v := int(n)
	return &v
}
