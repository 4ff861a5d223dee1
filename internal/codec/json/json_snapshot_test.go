package json

import (
	"testing"

	"github.com/elaraai/east-go/internal/types"
	"github.com/elaraai/east-go/internal/values"
	"github.com/gkampitakis/go-snaps/snaps"
)

// sampleProfile builds a moderately nested value (Struct of a String, an
// Array of Integer, and a Variant with a payload) used by every codec
// package's snapshot test, so the four formats' outputs for the same
// shape sit side by side under each package's __snapshots__ directory.
func sampleProfile() (values.Value, *types.Type) {
	statusType := types.NewVariant(
		types.Case{Name: "Active", Type: types.Null},
		types.Case{Name: "Suspended", Type: types.String},
	)
	profileType := types.NewStruct(
		types.Field{Name: "Name", Type: types.String},
		types.Field{Name: "Scores", Type: types.NewArray(types.Integer)},
		types.Field{Name: "Status", Type: statusType},
	)
	profile := values.NewStruct(profileType,
		[]string{"Name", "Scores", "Status"},
		[]values.Value{
			values.Str("Ada"),
			values.NewArray(types.Integer, values.Int(7), values.Int(9), values.Int(2)),
			values.NewVariant(statusType, "Suspended", values.Str("pending review")),
		},
	)
	return profile, profileType
}

func TestSnapshotEncodedProfile(t *testing.T) {
	profile, profileType := sampleProfile()
	data, err := Encode(profile, profileType)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	snaps.MatchSnapshot(t, string(data))
}
