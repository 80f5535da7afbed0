package entity_test

import (
	"testing"

	"tienda/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAssetListValue_EmptyIsNull(t *testing.T) {
	var empty entity.AssetList

	value, err := empty.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)

	value, err = entity.AssetList{}.Value()
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestAssetListValue_MarshalsJSONArray(t *testing.T) {
	list := entity.AssetList{"products/images/a.png", "products/images/b.png"}

	value, err := list.Value()

	assert.NoError(t, err)
	assert.JSONEq(t, `["products/images/a.png","products/images/b.png"]`, string(value.([]byte)))
}

func TestAssetListScan_NullBecomesNil(t *testing.T) {
	list := entity.AssetList{"stale"}

	err := list.Scan(nil)

	assert.NoError(t, err)
	assert.Nil(t, list)
}

func TestAssetListScan_AcceptsBytesAndString(t *testing.T) {
	var fromBytes entity.AssetList
	err := fromBytes.Scan([]byte(`["a.png","b.png"]`))
	assert.NoError(t, err)
	assert.Equal(t, entity.AssetList{"a.png", "b.png"}, fromBytes)

	var fromString entity.AssetList
	err = fromString.Scan(`["a.png"]`)
	assert.NoError(t, err)
	assert.Equal(t, entity.AssetList{"a.png"}, fromString)
}

func TestAssetListScan_EmptyArrayBecomesNil(t *testing.T) {
	var list entity.AssetList

	err := list.Scan([]byte(`[]`))

	assert.NoError(t, err)
	assert.Nil(t, list)
}

func TestAssetListScan_RejectsUnknownType(t *testing.T) {
	var list entity.AssetList

	err := list.Scan(42)

	assert.Error(t, err)
}
