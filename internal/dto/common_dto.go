package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/examhub/internal/model"
)

type ErrorResponse struct {
	Message string   `json:"Message"`
	Details []string `json:"Details,omitempty"`
}

// FlexStrings decodes a JSON array, a string holding a JSON array, or a
// comma-separated string such as "A,B,C,D".
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		*f = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("options must be a list or a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*f = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var list []string
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return fmt.Errorf("options: %w", err)
		}
		*f = list
		return nil
	}

	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	*f = list
	return nil
}

// FlexPairs decodes a JSON array of {Left, Right} objects or a string holding
// one. Keys are matched case-insensitively.
type FlexPairs []model.Pair

func (f *FlexPairs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("pairs: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = nil
			return nil
		}
		data = []byte(s)
	}
	var pairs []model.Pair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("pairs must be a list of {Left, Right}: %w", err)
	}
	*f = pairs
	return nil
}

// zone-less layouts are read as UTC
var flexTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// FlexTime decodes an RFC3339 timestamp or one without a zone offset, as
// .NET and mobile clients often send.
type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		f.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		f.Time = time.Time{}
		return nil
	}
	for _, layout := range flexTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			f.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp %q is not RFC3339", s)
}
