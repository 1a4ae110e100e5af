package api

import (
	"fmt"
	"time"

	"github.com/aharoni/caseboard/internal/model"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// taskDTO is the wire representation of a task.
type taskDTO struct {
	ID             string            `json:"id"`
	Description    string            `json:"description"`
	DueDate        string            `json:"due_date"`
	Status         string            `json:"status"`
	TypeID         string            `json:"type_id"`
	AssigneeID     string            `json:"assignee_id"`
	ChildID        *string           `json:"child_id,omitempty"`
	TutorID        *string           `json:"tutor_id,omitempty"`
	PendingTutorID *string           `json:"pending_tutor_id,omitempty"`
	UserInfo       map[string]string `json:"user_info,omitempty"`
	TuteeMatchInfo *tuteeMatchDTO    `json:"tutee_match_info,omitempty"`
	Names          string            `json:"names,omitempty"`
	Phones         string            `json:"phones,omitempty"`
	OtherInfo      string            `json:"other_information,omitempty"`
	Created        time.Time         `json:"created"`
	Updated        time.Time         `json:"updated"`
}

type tuteeMatchDTO struct {
	TutorName string `json:"tutor_name"`
	TuteeName string `json:"tutee_name"`
	Phone     string `json:"phone"`
	Eligible  bool   `json:"eligible"`
}

// taskTypeDTO is the wire representation of a task type.
type taskTypeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// optionDTO is the id + label shape returned by the reference-data provider.
type optionDTO struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Roles []string `json:"roles,omitempty"`
}

// identityDTO is the shape returned by the role/identity provider.
type identityDTO struct {
	Username    string             `json:"username"`
	Admin       bool               `json:"is_admin"`
	Guest       bool               `json:"is_guest"`
	Permissions []model.Permission `json:"permissions"`
}

// TaskRequest is the payload for creating or updating a task. Optional
// references are pointers so absent and empty are distinguishable; which
// fields are populated is governed by the type's behavioral tag and
// enforced by the form controller before a request is ever built.
type TaskRequest struct {
	Description    string  `json:"description"`
	DueDate        string  `json:"due_date"`
	TypeID         string  `json:"type_id"`
	AssigneeID     string  `json:"assignee_id"`
	ChildID        *string `json:"child_id,omitempty"`
	TutorID        *string `json:"tutor_id,omitempty"`
	PendingTutorID *string `json:"pending_tutor_id,omitempty"`
}

// toModel converts a wire task to the domain model.
func (d taskDTO) toModel() (model.Task, error) {
	due, err := time.Parse(dateLayout, d.DueDate)
	if err != nil {
		return model.Task{}, fmt.Errorf("parsing due date %q for task %s: %w", d.DueDate, d.ID, err)
	}

	t := model.Task{
		ID:               d.ID,
		Description:      d.Description,
		DueDate:          due,
		Status:           d.Status,
		TypeID:           d.TypeID,
		AssigneeID:       d.AssigneeID,
		ChildID:          d.ChildID,
		TutorID:          d.TutorID,
		PendingTutorID:   d.PendingTutorID,
		UserInfo:         d.UserInfo,
		Names:            d.Names,
		Phones:           d.Phones,
		OtherInformation: d.OtherInfo,
		Created:          d.Created,
		Updated:          d.Updated,
	}
	if d.TuteeMatchInfo != nil {
		t.TuteeMatchInfo = &model.TuteeMatchInfo{
			TutorName: d.TuteeMatchInfo.TutorName,
			TuteeName: d.TuteeMatchInfo.TuteeName,
			Phone:     d.TuteeMatchInfo.Phone,
			Eligible:  d.TuteeMatchInfo.Eligible,
		}
	}
	return t, nil
}

func (d taskTypeDTO) toModel() model.TaskType {
	return model.TaskType{
		ID:       d.ID,
		Name:     d.Name,
		Resource: d.Resource,
		Action:   d.Action,
	}
}

func (d optionDTO) toModel() model.Option {
	return model.Option{ID: d.ID, Label: d.Label, Roles: d.Roles}
}

func optionsToModel(dtos []optionDTO) []model.Option {
	opts := make([]model.Option, 0, len(dtos))
	for _, d := range dtos {
		opts = append(opts, d.toModel())
	}
	return opts
}
