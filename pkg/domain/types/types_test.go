package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/covidash/pkg/domain/types"
)

func TestCountryName_DataPointID(t *testing.T) {
	gt.Equal(t, types.CountryName("Italy").DataPointID(), types.DataPointID("Italy_data_added"))
	gt.Equal(t, types.CountryName("United States of America").DataPointID().String(), "United States of America_data_added")
}

func TestNewCommentID(t *testing.T) {
	id1 := types.NewCommentID()
	id2 := types.NewCommentID()

	gt.NotEqual(t, id1, id2)
	gt.Equal(t, len(id1.String()), 36)
}
