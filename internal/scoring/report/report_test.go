package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	r := Generate("startup-42")

	assert.Equal(t, "SENIOR_BA_DUE_DILIGENCE", r.Meta.Type)
	assert.Equal(t, "startup-42", r.Meta.StartupID)
	assert.True(t, r.Meta.Demo)
	assert.Equal(t, "WATCH_LIST", r.FinalVerdict.Decision)
	assert.Len(t, r.FinancialRiskAssessment.RiskMatrix, 4)
	assert.Len(t, r.ImplementationGovernance.Roadmap, 4)
	assert.NotEmpty(t, r.StrategicDiagnosis.SWOT.Strengths)
}

func TestGenerateJSONShape(t *testing.T) {
	data, err := json.Marshal(Generate("startup-42"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"meta",
		"executive_framing",
		"strategic_diagnosis",
		"financial_risk_assessment",
		"implementation_governance",
		"final_verdict",
	} {
		assert.Contains(t, decoded, key)
	}
}
