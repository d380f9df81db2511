package planfix

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lsoft/planfix-reminder/internal/domain"
)

// taskFields is the field list requested for every task. Asking for a
// fixed set keeps responses small and the mapping predictable.
const taskFields = "id,name,description,endDateTime,startDateTime,status,priority," +
	"assignees,participants,auditors,assigner,overdue"

type taskListRequest struct {
	Offset   int          `json:"offset"`
	PageSize int          `json:"pageSize"`
	FilterID int          `json:"filterId,omitempty"`
	Filters  []roleFilter `json:"filters,omitempty"`
	Fields   string       `json:"fields"`
}

// roleFilter selects tasks where the user holds a given role.
type roleFilter struct {
	Type     int    `json:"type"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// taskListResponse is the /task/list envelope. The API reports its own
// errors inside a 200 response with Result set to "fail".
type taskListResponse struct {
	Result string    `json:"result"`
	Error  string    `json:"error"`
	Tasks  []apiTask `json:"tasks"`
}

type apiTask struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Status      apiStatus  `json:"status"`
	Overdue     bool       `json:"overdue"`
	EndDateTime *apiDate   `json:"endDateTime"`
	EndDate     *apiDate   `json:"endDate"`
	Assignees   apiMembers `json:"assignees"`
}

// apiStatus accepts both shapes the API is known to produce: an object
// with a name field, or a bare string.
type apiStatus struct {
	Name string
}

func (s *apiStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Name = obj.Name
	return nil
}

// apiDate accepts a date either as a bare string or as an object
// carrying the value under datetime, date or dateTimeUtcSeconds, in
// that order of preference.
type apiDate struct {
	Value string
}

func (d *apiDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &d.Value)
	}
	var obj struct {
		Datetime           string `json:"datetime"`
		Date               string `json:"date"`
		DateTimeUTCSeconds string `json:"dateTimeUtcSeconds"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	switch {
	case obj.Datetime != "":
		d.Value = obj.Datetime
	case obj.Date != "":
		d.Value = obj.Date
	default:
		d.Value = obj.DateTimeUTCSeconds
	}
	return nil
}

type apiMembers struct {
	Users []apiUser `json:"users"`
}

type apiUser struct {
	ID   flexibleID `json:"id"`
	Name string     `json:"name"`
}

// displayName prefers the user's name and falls back to a stable
// ID-based placeholder when the API omits it.
func (u apiUser) displayName() string {
	if u.Name != "" {
		return u.Name
	}
	return "ID:" + string(u.ID)
}

// flexibleID accepts user identifiers sent either as JSON numbers or
// as strings like "user:4".
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// toDomain maps an API task onto the engine's task shape. The due
// value stays a raw string: parsing and categorization are the
// classifier's concern.
func (t apiTask) toDomain() domain.Task {
	var due string
	if t.EndDateTime != nil && t.EndDateTime.Value != "" {
		due = t.EndDateTime.Value
	} else if t.EndDate != nil {
		due = t.EndDate.Value
	}

	var assignees []string
	for _, u := range t.Assignees.Users {
		assignees = append(assignees, u.displayName())
	}

	return domain.Task{
		ID:        strconv.Itoa(t.ID),
		Name:      strings.TrimSpace(t.Name),
		Status:    t.Status.Name,
		Overdue:   t.Overdue,
		Due:       due,
		Assignees: assignees,
	}
}
