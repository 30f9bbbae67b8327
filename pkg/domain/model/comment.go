package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

// CommentDocument is one comment submission together with the country snapshot it refers to.
// Documents are append only: every submission creates a new one, even for the same country.
type CommentDocument struct {
	ID          types.CommentID   `json:"id" firestore:"id" bson:"id"`
	DataPointID types.DataPointID `json:"data_point_id" firestore:"data_point_id" bson:"data_point_id"`
	Country     types.CountryName `json:"country" firestore:"country" bson:"country"`
	CountryData []Record          `json:"country_data" firestore:"country_data" bson:"country_data"`
	Comments    []Comment         `json:"comments" firestore:"comments" bson:"comments"`
	CreatedAt   time.Time         `json:"created_at" firestore:"created_at" bson:"created_at"`
}

// Comment is a single free-text remark
type Comment struct {
	UserID    types.UserID `json:"user_id" firestore:"user_id" bson:"user_id"`
	Comment   string       `json:"comment" firestore:"comment" bson:"comment"`
	TimeStamp string       `json:"time_stamp" firestore:"time_stamp" bson:"time_stamp"`
}

// TimeStampLayout formats comment timestamps as UTC ISO-8601 with microseconds
const TimeStampLayout = "2006-01-02T15:04:05.000000"

// NewCommentDocument builds the document stored for a comment on the country's filtered view
func NewCommentDocument(country types.CountryName, records []Record, userID types.UserID, text string, now time.Time) (*CommentDocument, error) {
	if country == "" {
		return nil, goerr.New("country is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, goerr.New("comment is empty")
	}
	if userID == "" {
		userID = types.SystemUserID
	}

	data := make([]Record, len(records))
	copy(data, records)

	now = now.UTC()
	return &CommentDocument{
		ID:          types.NewCommentID(),
		DataPointID: country.DataPointID(),
		Country:     country,
		CountryData: data,
		Comments: []Comment{
			{
				UserID:    userID,
				Comment:   text,
				TimeStamp: now.Format(TimeStampLayout),
			},
		},
		CreatedAt: now,
	}, nil
}

// Validate checks the document before it is written
func (d *CommentDocument) Validate() error {
	if d == nil {
		return goerr.New("comment document is nil")
	}
	if d.ID == "" {
		return goerr.New("comment document ID is empty")
	}
	if d.DataPointID == "" {
		return goerr.New("data point ID is empty", goerr.V("id", d.ID))
	}
	if len(d.Comments) == 0 {
		return goerr.New("comment document has no comments", goerr.V("id", d.ID))
	}
	return nil
}

// SelectionInput is the state sent by the dashboard whenever the country dropdown changes or the
// submit button is clicked
type SelectionInput struct {
	Country      types.CountryName
	SubmitClicks int
	PrevClicks   int
	Comment      string
	UserID       types.UserID
}

// SelectionOutput is the recomputed view plus the outcome of the comment side effect
type SelectionOutput struct {
	View         *CountryView     `json:"view"`
	CommentAdded *CommentDocument `json:"comment_added,omitempty"`
}

// ShouldInsertComment decides whether a selection event writes a comment. Only a counter that
// moved forward since the previous event, with a non-empty comment, triggers an insert, so
// re-rendering for a country change never writes again.
func ShouldInsertComment(prevClicks, clicks int, comment string) bool {
	return clicks > 0 && clicks > prevClicks && strings.TrimSpace(comment) != ""
}
