package qualitative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"content_auditor/internal/domain"
)

func TestParse_FencedObject(t *testing.T) {
	raw := "```json\n" + `{"misinformation":{"score":72,"issues":["claim"],"recommendations":["cite"]},` +
		`"recency":{"score":90,"issues":[],"recommendations":[]},` +
		`"logicalConsistency":{"score":100},"seo":{"score":55,"issues":["title"]},` +
		`"readability":{"score":80,"issues":[],"recommendations":[]}}` + "\n```"

	res, problems := Parse(raw, domain.EnabledChecks{})

	assert.Empty(t, problems)
	assert.Equal(t, 72, res.Misinformation.Score)
	assert.Equal(t, []string{"claim"}, res.Misinformation.Issues)
	assert.Equal(t, []string{"cite"}, res.Misinformation.Recommendations)
	assert.Equal(t, 55, res.SEO.Score)
	assert.Equal(t, []string{}, res.SEO.Recommendations)
	assert.Equal(t, []string{}, res.LogicalConsistency.Issues)
}

func TestParse_SurroundingProse(t *testing.T) {
	raw := `Sure! Here is the review: {"misinformation":{"score":40,"issues":[],"recommendations":[]}} Hope it helps.`

	res, _ := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 40, res.Misinformation.Score)
}

func TestParse_TruncatedInsideArray(t *testing.T) {
	raw := `{"misinformation":{"score":65,"issues":["first","seco`

	res, _ := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 65, res.Misinformation.Score)
	assert.Equal(t, []string{"first", "seco"}, res.Misinformation.Issues)
	assert.Equal(t, domain.NeutralSection(), res.Recency)
}

func TestParse_TruncatedInsideKey(t *testing.T) {
	raw := `{"misinformation":{"score":30,"issues":[],"recommendations":[]},"recency":{"sco`

	res, problems := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 30, res.Misinformation.Score)
	assert.Equal(t, domain.NeutralSection(), res.Recency)
	assert.NotEmpty(t, problems)
}

func TestParse_DanglingComma(t *testing.T) {
	raw := `{"seo":{"score":45,"issues":[],"recommendations":[]},`

	res, _ := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 45, res.SEO.Score)
}

func TestParse_Garbage(t *testing.T) {
	res, problems := Parse("I cannot help with that.", domain.EnabledChecks{})

	assert.Equal(t, domain.NeutralQualitativeResult(), res)
	assert.Len(t, problems, 1)
}

func TestParse_ClampsScores(t *testing.T) {
	raw := `{"misinformation":{"score":150},"recency":{"score":-3},"readability":{"score":79.6}}`

	res, _ := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 100, res.Misinformation.Score)
	assert.Equal(t, 0, res.Recency.Score)
	assert.Equal(t, 80, res.Readability.Score)
}

func TestParse_DisabledSectionStaysNeutral(t *testing.T) {
	raw := `{"misinformation":{"score":10},"seo":{"score":20}}`

	res, _ := Parse(raw, domain.EnabledChecks{domain.CheckSEO: false})

	assert.Equal(t, 10, res.Misinformation.Score)
	assert.Equal(t, domain.NeutralSection(), res.SEO)
}

func TestParse_WrongSectionShape(t *testing.T) {
	raw := `{"misinformation":"looks fine","recency":{"score":"high"},"seo":{"score":70}}`

	res, problems := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, domain.NeutralSection(), res.Misinformation)
	assert.Equal(t, domain.NeutralSection(), res.Recency)
	assert.Equal(t, 70, res.SEO.Score)
	assert.Contains(t, problems, "malformed checkMisinformation")
	assert.Contains(t, problems, "malformed checkRecency.score")
}

func TestParse_AlternateKeys(t *testing.T) {
	raw := `{"misinformation_risk":{"score":33},"logical_consistency":{"score":44}}`

	res, _ := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 33, res.Misinformation.Score)
	assert.Equal(t, 44, res.LogicalConsistency.Score)
}

func TestParse_BadFieldKeepsOtherFields(t *testing.T) {
	raw := `{"misinformation":{"score":20,"issues":"x","recommendations":["verify the figures"]}}`

	res, problems := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 20, res.Misinformation.Score)
	assert.Equal(t, []string{}, res.Misinformation.Issues)
	assert.Equal(t, []string{"verify the figures"}, res.Misinformation.Recommendations)
	assert.Contains(t, problems, "malformed checkMisinformation.issues")
}

func TestParse_NumericStringScore(t *testing.T) {
	raw := `{"misinformation":{"score":"55","issues":[]},"seo":{"score":" 42.4 "}}`

	res, problems := Parse(raw, domain.EnabledChecks{})

	assert.Equal(t, 55, res.Misinformation.Score)
	assert.Equal(t, 42, res.SEO.Score)
	assert.NotContains(t, problems, "malformed checkMisinformation.score")
}
