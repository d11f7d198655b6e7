package calls

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultDurationMinutes = 30
	// MaxDurationMinutes caps requested durations at one year.
	MaxDurationMinutes = 365 * 24 * 60

	DefaultClientName  = "Client"
	DefaultModelName   = "Model"
	DefaultManagerName = "Manager"
)

var errNotText = errors.New("expected a string, number or boolean")

// CallRequest is the body of POST /api/create-call. Every field is optional.
type CallRequest struct {
	DurationMinutes Minutes `json:"durationMinutes"`
	ClientName      Text    `json:"clientName"`
	ModelName       Text    `json:"modelName"`
	ManagerName     Text    `json:"managerName"`
	ManagerPass     Text    `json:"managerPass"`
}

// Minutes is a loosely typed duration. Numbers and numeric strings are
// accepted as-is; any other non-null value decodes to NaN.
type Minutes struct {
	value float64
	set   bool
}

func MinutesOf(v float64) Minutes { return Minutes{value: v, set: true} }

func (m *Minutes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Minutes{}
		return nil
	}
	*m = Minutes{value: math.NaN(), set: true}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			m.value = 0
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			m.value = f
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		m.value = f
	}
	return nil
}

// Resolve returns the requested minutes, or the default when the field was absent.
func (m Minutes) Resolve() float64 {
	if !m.set {
		return DefaultDurationMinutes
	}
	return m.value
}

// Text is a display string that also accepts JSON numbers and booleans.
// null and false decode to the empty string.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = ""
	case bytes.Equal(data, []byte("true")):
		*t = "true"
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*t = Text(data)
	default:
		return errNotText
	}
	return nil
}

func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}

// CallLinks is the successful response of POST /api/create-call.
type CallLinks struct {
	OK        bool  `json:"ok"`
	ExpiresAt int64 `json:"expiresAt"`
	Links     Links `json:"links"`
}

// Links holds one join URL per role. All three share the same room URL.
type Links struct {
	Model          string `json:"model"`
	Client         string `json:"client"`
	ManagerStealth string `json:"managerStealth"`
}

// RoomRequest is the body sent to the provider's room creation endpoint.
type RoomRequest struct {
	Privacy    string         `json:"privacy"`
	Properties RoomProperties `json:"properties"`
}

type RoomProperties struct {
	Exp int64 `json:"exp"`
}

// Room is the part of the provider's room object this service reads.
type Room struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
