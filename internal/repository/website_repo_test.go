package repository

import (
	"testing"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	require.NoError(t, InitTestDB())

	// The shared in-memory database survives between tests in this package
	for _, table := range []any{
		&model.FakeShopRecord{}, &model.CounterfeiterRecord{}, &model.Website{},
	} {
		require.NoError(t, db.Where("1 = 1").Delete(table).Error)
	}
}

func uintPtr(n uint) *uint { return &n }

func seedWebsite(t *testing.T, url string, typeID, categoryID *uint) *model.Website {
	t.Helper()

	website := &model.Website{URL: url, WebsiteTypeID: typeID, WebsiteCategoryID: categoryID}
	require.NoError(t, db.Create(website).Error)

	return website
}

func TestFindWebsiteByURLIgnoringScheme(t *testing.T) {
	setupTestDB(t)

	seedWebsite(t, "https://fake-shop.example", nil, nil)

	found, err := FindWebsiteByURLIgnoringScheme("http://fake-shop.example/")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "https://fake-shop.example", found.URL)

	found, err = FindWebsiteByURLIgnoringScheme("https://other.example")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestWebsitesToCheck(t *testing.T) {
	setupTestDB(t)

	untyped := seedWebsite(t, "https://untyped.example", nil, nil)
	fakeShop := seedWebsite(t, "https://shop.example", uintPtr(model.WebsiteTypeFakeShop), nil)
	seedWebsite(t, "https://nofake.example", uintPtr(model.WebsiteTypeNoFake), nil)
	recorded := seedWebsite(t, "https://recorded.example", uintPtr(model.WebsiteTypeFakeShop), nil)

	record := &model.FakeShopRecord{URL: recorded.URL, WebsiteID: &recorded.ID}
	require.NoError(t, db.Create(record).Error)

	var urls []string
	require.NoError(t, WebsitesToCheck().Order("websites.id").Pluck("websites.url", &urls).Error)

	assert.Equal(t, []string{untyped.URL, fakeShop.URL}, urls)
}

func TestWebsitesDisagreement(t *testing.T) {
	setupTestDB(t)

	// Fake shop type defaults to the online shop category
	seedWebsite(t, "https://agrees.example",
		uintPtr(model.WebsiteTypeFakeShop), uintPtr(model.WebsiteCategoryOnlineShop))
	disagrees := seedWebsite(t, "https://disagrees.example",
		uintPtr(model.WebsiteTypeFakeShop), uintPtr(model.WebsiteCategoryOther))
	uncategorized := seedWebsite(t, "https://uncategorized.example",
		uintPtr(model.WebsiteTypeFakeShop), nil)
	seedWebsite(t, "https://untyped.example", nil, nil)

	var urls []string
	require.NoError(t, WebsitesDisagreement().Order("websites.id").Pluck("websites.url", &urls).Error)

	assert.Equal(t, []string{disagrees.URL, uncategorized.URL}, urls)
}

func TestWebsiteScopesByCategory(t *testing.T) {
	setupTestDB(t)

	seedWebsite(t, "https://other.example", nil, uintPtr(model.WebsiteCategoryOther))
	seedWebsite(t, "https://shop.example", nil, uintPtr(model.WebsiteCategoryOnlineShop))
	seedWebsite(t, "https://unsure.example", uintPtr(model.WebsiteTypeUnsure), nil)

	var count int64
	require.NoError(t, WebsitesOther().Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, WebsitesOnlineShops().Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, WebsitesUnsure().Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteWebsiteReportsRemoval(t *testing.T) {
	setupTestDB(t)

	website := seedWebsite(t, "https://doomed.example", nil, nil)

	removed, err := DeleteWebsite(website.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = DeleteWebsite(website.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
