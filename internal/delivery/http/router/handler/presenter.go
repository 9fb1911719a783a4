// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"shoplist/internal/domain/entity"
	"shoplist/internal/usecase"

	"github.com/google/uuid"
)

// Response models keep credentials and pending verification codes out of API
// payloads; entities are never serialized directly.

// OwnerResponse is the external representation of an owner.
type OwnerResponse struct {
	ID             uuid.UUID            `json:"id"`
	Username       string               `json:"username"`
	Phonenumber    string               `json:"phonenumber,omitempty"`
	Email          string               `json:"email,omitempty"`
	Active         bool                 `json:"active"`
	Home           *CoordinateResponse  `json:"home,omitempty"`
	Items          []ItemResponse       `json:"items,omitempty"`
	InterestedArea []CoordinateResponse `json:"interested_area,omitempty"`
	Version        int64                `json:"version"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// CoordinateResponse is the external representation of a coordinate.
type CoordinateResponse struct {
	Longitude      float64 `json:"longitude"`
	Latitude       float64 `json:"latitude"`
	LongitudeDelta float64 `json:"longitude_delta"`
	LatitudeDelta  float64 `json:"latitude_delta"`
}

// ItemResponse is the external representation of a list item.
type ItemResponse struct {
	Key          string          `json:"key"`
	Title        string          `json:"title"`
	Body         string          `json:"body,omitempty"`
	Shareable    bool            `json:"shareable"`
	SharedWith   []GroupResponse `json:"shared_with,omitempty"`
	Version      int64           `json:"version"`
	LastModified time.Time       `json:"last_modified"`
}

// GroupResponse is the external representation of a user group.
type GroupResponse struct {
	ID      uuid.UUID       `json:"id"`
	OwnerID uuid.UUID       `json:"owner_id"`
	Name    string          `json:"name"`
	Members []OwnerResponse `json:"members,omitempty"`
}

func toCoordinateResponse(c *entity.Coordinate) *CoordinateResponse {
	if c == nil {
		return nil
	}

	return &CoordinateResponse{
		Longitude:      c.Longitude,
		Latitude:       c.Latitude,
		LongitudeDelta: c.LongitudeDelta,
		LatitudeDelta:  c.LatitudeDelta,
	}
}

func toOwnerResponse(owner *entity.Owner) OwnerResponse {
	resp := OwnerResponse{
		ID:          owner.ID,
		Username:    owner.Username,
		Phonenumber: owner.Phonenumber,
		Email:       owner.Email,
		Active:      owner.Active,
		Home:        toCoordinateResponse(owner.Home),
		Version:     owner.Version,
		CreatedAt:   owner.CreatedAt,
		UpdatedAt:   owner.UpdatedAt,
	}

	for _, item := range owner.Items {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	for i := range owner.InterestedArea {
		resp.InterestedArea = append(resp.InterestedArea, *toCoordinateResponse(&owner.InterestedArea[i]))
	}

	return resp
}

func toOwnerResponses(owners []*entity.Owner) []OwnerResponse {
	resps := make([]OwnerResponse, 0, len(owners))
	for _, owner := range owners {
		resps = append(resps, toOwnerResponse(owner))
	}

	return resps
}

func toItemResponse(item *entity.Item) ItemResponse {
	resp := ItemResponse{
		Key:          item.Key,
		Title:        item.Title,
		Body:         item.Body,
		Shareable:    item.Shareable,
		Version:      item.Version,
		LastModified: item.LastModified,
	}

	for _, group := range item.SharedWith {
		resp.SharedWith = append(resp.SharedWith, GroupResponse{
			ID:      group.ID,
			OwnerID: group.OwnerID,
			Name:    group.Name,
		})
	}

	return resp
}

func toGroupResponse(group *entity.UserGroup) GroupResponse {
	resp := GroupResponse{
		ID:      group.ID,
		OwnerID: group.OwnerID,
		Name:    group.Name,
	}

	for _, member := range group.Members {
		resp.Members = append(resp.Members, toOwnerResponse(member))
	}

	return resp
}

func toGroupResponses(groups []*entity.UserGroup) []GroupResponse {
	resps := make([]GroupResponse, 0, len(groups))
	for _, group := range groups {
		resps = append(resps, toGroupResponse(group))
	}

	return resps
}

// coordinateInput converts a request coordinate into the usecase DTO.
func coordinateInput(c *CoordinateResponse) *usecase.CoordinateInput {
	if c == nil {
		return nil
	}

	return &usecase.CoordinateInput{
		Longitude:      c.Longitude,
		Latitude:       c.Latitude,
		LongitudeDelta: c.LongitudeDelta,
		LatitudeDelta:  c.LatitudeDelta,
	}
}

func coordinateInputs(coords []CoordinateResponse) []usecase.CoordinateInput {
	inputs := make([]usecase.CoordinateInput, 0, len(coords))
	for i := range coords {
		inputs = append(inputs, *coordinateInput(&coords[i]))
	}

	return inputs
}
