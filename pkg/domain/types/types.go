package types

import (
	"fmt"

	"github.com/google/uuid"
)

// CountryName represents a country/region name as projected by the warehouse
type CountryName string

// String returns the string representation
func (n CountryName) String() string {
	return string(n)
}

// DataPointID returns the synthetic identifier shared by every comment document of the country
func (n CountryName) DataPointID() DataPointID {
	return DataPointID(fmt.Sprintf("%s_data_added", n))
}

// ISOCode represents an ISO 3166-1 country code
type ISOCode string

// String returns the string representation
func (c ISOCode) String() string {
	return string(c)
}

// DataPointID groups comment documents written for the same country
type DataPointID string

// String returns the string representation
func (id DataPointID) String() string {
	return string(id)
}

// CommentID represents a comment document identifier
type CommentID string

// String returns the string representation
func (id CommentID) String() string {
	return string(id)
}

// NewCommentID creates a new CommentID using UUID v7 so that IDs sort by creation time
func NewCommentID() CommentID {
	id, err := uuid.NewV7()
	if err != nil {
		return CommentID(uuid.New().String())
	}
	return CommentID(id.String())
}

// UserID represents the author tag attached to a comment
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// SystemUserID is the author tag used when the submitter is anonymous
const SystemUserID UserID = "system"

// PresetName identifies a saved query
type PresetName string

// String returns the string representation
func (n PresetName) String() string {
	return string(n)
}
