package api

import (
	"context"

	"github.com/aharoni/caseboard/internal/model"
)

// Reference-data endpoints. Each returns id + display-label pairs; the
// staff list additionally carries role names.

// ListStaff retrieves the staff list with roles.
func (c *Client) ListStaff(ctx context.Context) ([]model.Option, error) {
	return c.listOptions(ctx, "/staff")
}

// ListChildren retrieves the children list.
func (c *Client) ListChildren(ctx context.Context) ([]model.Option, error) {
	return c.listOptions(ctx, "/children")
}

// ListTutors retrieves the approved tutors list.
func (c *Client) ListTutors(ctx context.Context) ([]model.Option, error) {
	return c.listOptions(ctx, "/tutors")
}

// ListPendingTutors retrieves the not-yet-approved tutor candidates.
func (c *Client) ListPendingTutors(ctx context.Context) ([]model.Option, error) {
	return c.listOptions(ctx, "/pending-tutors")
}

// ListGeneralVolunteers retrieves general volunteers that are not pending.
func (c *Client) ListGeneralVolunteers(ctx context.Context) ([]model.Option, error) {
	return c.listOptions(ctx, "/general-volunteers")
}

func (c *Client) listOptions(ctx context.Context, path string) ([]model.Option, error) {
	var dtos []optionDTO
	if err := c.get(ctx, path, &dtos); err != nil {
		return nil, err
	}
	return optionsToModel(dtos), nil
}

// GetSession retrieves the current identity and granted permissions and
// builds the session object threaded into the rest of the application.
func (c *Client) GetSession(ctx context.Context) (*model.Session, error) {
	var dto identityDTO
	if err := c.get(ctx, "/session", &dto); err != nil {
		return nil, err
	}
	return &model.Session{
		Username:    dto.Username,
		Admin:       dto.Admin,
		Guest:       dto.Guest,
		Permissions: dto.Permissions,
	}, nil
}
