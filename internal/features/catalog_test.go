package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	require.NoError(t, err)
	require.NotZero(t, catalog.Len())

	rec := catalog.Record("css.properties.grid")
	require.NotNil(t, rec)
	assert.Equal(t, "CSS Grid", rec.Title)

	assert.Nil(t, catalog.Record("no.such.id"))
	assert.Len(t, catalog.Records(), catalog.Len())
}

// All depends_on and related references in the embedded dataset must point
// at records that exist.
func TestEmbeddedDataset_NoDanglingRefs(t *testing.T) {
	catalog := Default()

	for _, rec := range catalog.Records() {
		for _, ref := range append(append([]string{}, rec.DependsOn...), rec.Related...) {
			assert.NotNil(t, catalog.Record(ref), "%s references unknown id %s", rec.ID, ref)
		}
	}
}

func TestBuildCatalog_Validation(t *testing.T) {
	valid := Record{
		ID:     "test.a",
		Title:  "A",
		Status: RecordStatus{Baseline: BaselineFlag{IsBool: true, Bool: true}},
	}

	t.Run("empty id", func(t *testing.T) {
		_, err := buildCatalog([]Record{{Title: "A"}}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty id")
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := buildCatalog([]Record{{ID: "test.a"}}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty title")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := buildCatalog([]Record{valid, valid}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate record id")
	})

	t.Run("invalid baseline string", func(t *testing.T) {
		bad := valid
		bad.Status = RecordStatus{Baseline: BaselineFlag{Str: "sometimes"}}
		_, err := buildCatalog([]Record{bad}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid baseline")
	})

	t.Run("manual alias missing id", func(t *testing.T) {
		_, err := buildCatalog([]Record{valid}, []ManualAlias{{Name: "a"}})
		require.Error(t, err)
	})

	t.Run("valid", func(t *testing.T) {
		c, err := buildCatalog([]Record{valid}, []ManualAlias{{Name: "alias a", ID: "test.a"}})
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})
}
