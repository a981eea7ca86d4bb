package service

import (
	"bytes"
	"context"
	"testing"

	"Foodgram/models"
	"Foodgram/pkg/errs"
	"Foodgram/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingService_EmptyCart(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "shopper")

	items, err := f.shopping.Aggregate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestShoppingService_SumsSameNameAndUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "chef")
	shopper := f.user(t, "shopper")
	tag := f.tag(t, "Baking", "baking")
	flour := f.ingredient(t, "Flour", "g")
	flourCups := f.ingredient(t, "Flour", "cup")
	egg := f.ingredient(t, "egg", "pcs")

	bread := f.recipe(t, author, "Bread", []*models.Tag{tag}, []*models.Ingredient{flour, flourCups}, []int{100, 1})
	cake := f.recipe(t, author, "Cake", []*models.Tag{tag}, []*models.Ingredient{flour, egg}, []int{250, 3})
	f.recipe(t, author, "Not in cart", []*models.Tag{tag}, []*models.Ingredient{flour}, []int{999})

	require.NoError(t, f.relations.Add(ctx, RelationShoppingCart, shopper.ID, bread.ID))
	require.NoError(t, f.relations.Add(ctx, RelationShoppingCart, shopper.ID, cake.ID))

	items, err := f.shopping.Aggregate(ctx, shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.ShoppingItem{
		{Name: "Flour", MeasurementUnit: "cup", TotalAmount: 1},
		{Name: "Flour", MeasurementUnit: "g", TotalAmount: 350},
		{Name: "egg", MeasurementUnit: "pcs", TotalAmount: 3},
	}, items)
}

func TestShoppingService_SortIsByteWise(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "chef")
	tag := f.tag(t, "Veg", "veg")
	apple := f.ingredient(t, "apple", "pcs")
	zucchini := f.ingredient(t, "Zucchini", "pcs")
	banana := f.ingredient(t, "Banana", "pcs")

	r := f.recipe(t, author, "Salad", []*models.Tag{tag}, []*models.Ingredient{apple, zucchini, banana}, []int{1, 2, 3})
	require.NoError(t, f.relations.Add(ctx, RelationShoppingCart, author.ID, r.ID))

	items, err := f.shopping.Aggregate(ctx, author.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Banana", "Zucchini", "apple"}, names)
}

func TestShoppingService_Download(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.user(t, "chef")
	tag := f.tag(t, "Baking", "baking")
	flour := f.ingredient(t, "flour", "g")
	r := f.recipe(t, author, "Bread", []*models.Tag{tag}, []*models.Ingredient{flour}, []int{500})
	require.NoError(t, f.relations.Add(ctx, RelationShoppingCart, author.ID, r.ID))

	var buf bytes.Buffer
	ct, name, err := f.shopping.Download(ctx, author.ID, "", &buf)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", ct)
	assert.Equal(t, "shopping_list.txt", name)
	assert.Equal(t, "Shopping list:\n1. Flour: 500 g\n", buf.String())

	buf.Reset()
	ct, _, err = f.shopping.Download(ctx, author.ID, "pdf", &buf)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	_, _, err = f.shopping.Download(ctx, author.ID, "xls", &buf)
	assert.True(t, errs.Is(err, errs.KindValidation))
}
