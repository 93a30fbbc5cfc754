package assemble

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden coverage for the violation report format consumed by tooling.
func TestViolationReportGolden(t *testing.T) {
	_, errs := Document(val(t, `{
		"smithy": "2.0",
		"shapes": {
			"example.weather#Forecast": {
				"type": "structure",
				"members": {
					"Temp": {"target": "example.weather#Float"},
					"temp": {"target": "example.weather#Float"}
				}
			},
			"example.weather#Unit": {
				"type": "enum",
				"members": {}
			}
		}
	}`))
	require.NotEmpty(t, errs)

	data, err := json.MarshalIndent(errs, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "violations", data)
}
