package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldocs_backend/internals/features/documents/drafts"
	"schooldocs_backend/internals/features/documents/templates/model"
	"schooldocs_backend/internals/testutil"
)

func TestSeedTemplatesIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)

	n, err := SeedTemplates(db)
	require.NoError(t, err)
	assert.Equal(t, len(drafts.Types), n)

	require.NoError(t, db.Model(&model.DocumentTemplateModel{}).
		Where("document_type = ?", "marksheet").
		Update("required_credits", 7).Error)

	n, err = SeedTemplates(db)
	require.NoError(t, err)
	assert.Zero(t, n)

	var m model.DocumentTemplateModel
	require.NoError(t, db.Where("document_type = ?", "marksheet").First(&m).Error)
	assert.Equal(t, 7, m.DocumentTemplateRequiredCredits)

	// every seeded type is one the draft decoder knows
	var types []string
	require.NoError(t, db.Model(&model.DocumentTemplateModel{}).Pluck("document_type", &types).Error)
	for _, typ := range types {
		assert.Equal(t, typ, drafts.NormalizeType(typ))
	}
}
