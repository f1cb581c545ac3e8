package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Pair is one left/right entry of a matching question or answer.
type Pair struct {
	Left  string `json:"Left"`
	Right string `json:"Right"`
}

// StringList is stored as a JSON text column. An empty list is stored as NULL.
type StringList []string

func (StringList) GormDataType() string { return "text" }

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	b, err := textBytes(src)
	if err != nil || b == nil {
		*l = nil
		return err
	}
	return json.Unmarshal(b, (*[]string)(l))
}

// PairList is stored as a JSON text column. An empty list is stored as NULL.
type PairList []Pair

func (PairList) GormDataType() string { return "text" }

func (l PairList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]Pair(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *PairList) Scan(src any) error {
	b, err := textBytes(src)
	if err != nil || b == nil {
		*l = nil
		return err
	}
	return json.Unmarshal(b, (*[]Pair)(l))
}

func textBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(v) == 0 {
			return nil, nil
		}
		return v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", src)
	}
}
