package service

import (
	"context"
	"strings"
	"testing"

	"Foodgram/models"
	"Foodgram/pkg/errs"
	"Foodgram/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registerRequest(username string) *types.RegisterRequest {
	return &types.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "long-enough-password",
	}
}

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.Register(ctx, registerRequest("cook"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "cook@example.com", created.Email)

	var stored models.User
	require.NoError(t, f.db.First(&stored, created.ID).Error)
	assert.NotEqual(t, "long-enough-password", stored.Password)

	_, err = f.users.Register(ctx, registerRequest("cook"))
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Equal(t, "email", e.Field)

	req := registerRequest("cook")
	req.Email = "other@example.com"
	_, err = f.users.Register(ctx, req)
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "username", e.Field)
}

func TestUserService_SetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "cook")

	err := f.users.SetPassword(ctx, u.ID, &types.SetPasswordRequest{CurrentPassword: "wrong", NewPassword: "brand-new-password"})
	var e *errs.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "current_password", e.Field)

	require.NoError(t, f.users.SetPassword(ctx, u.ID, &types.SetPasswordRequest{
		CurrentPassword: "secret-password",
		NewPassword:     "brand-new-password",
	}))
	_, err = f.auth.Login(ctx, &types.LoginRequest{Email: u.Email, Password: "brand-new-password"})
	assert.NoError(t, err)
}

func TestUserService_GetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	f.user(t, "carol")
	require.NoError(t, f.relations.Add(ctx, RelationFollow, alice.ID, bob.ID))

	got, err := f.users.Get(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSubscribed)

	got, err = f.users.Get(ctx, 0, bob.ID)
	require.NoError(t, err)
	assert.False(t, got.IsSubscribed)

	_, err = f.users.Get(ctx, alice.ID, 404)
	assert.True(t, errs.Is(err, errs.KindNotFound))

	items, total, err := f.users.List(ctx, alice.ID, &types.PageQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "alice", items[0].Username)
	assert.False(t, items[0].IsSubscribed)
	assert.True(t, items[1].IsSubscribed)
}

func TestUserService_Subscriptions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := f.user(t, "reader")
	chef := f.user(t, "chef")
	baker := f.user(t, "baker")
	tag := f.tag(t, "Dinner", "dinner")
	salt := f.ingredient(t, "salt", "g")
	for _, name := range []string{"one", "two", "three"} {
		f.recipe(t, chef, name, []*models.Tag{tag}, []*models.Ingredient{salt}, []int{1})
	}
	require.NoError(t, f.relations.Add(ctx, RelationFollow, reader.ID, chef.ID))
	require.NoError(t, f.relations.Add(ctx, RelationFollow, reader.ID, baker.ID))

	items, total, err := f.users.Subscriptions(ctx, reader.ID, &types.SubscriptionQuery{
		RecipesLimitQuery: types.RecipesLimitQuery{RecipesLimit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, items, 2)

	// newest subscription first
	assert.Equal(t, baker.ID, items[0].ID)
	assert.Empty(t, items[0].Recipes)
	assert.Zero(t, items[0].RecipesCount)

	assert.Equal(t, chef.ID, items[1].ID)
	assert.True(t, items[1].IsSubscribed)
	assert.Equal(t, int64(3), items[1].RecipesCount)
	require.Len(t, items[1].Recipes, 2)
	assert.Equal(t, "three", items[1].Recipes[0].Name)

	one, err := f.users.Subscription(ctx, reader.ID, chef.ID, 0)
	require.NoError(t, err)
	assert.Len(t, one.Recipes, 3)
}

func TestUserService_SubscriptionsCountInOneQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := f.user(t, "reader")
	tag := f.tag(t, "Dinner", "dinner")
	salt := f.ingredient(t, "salt", "g")
	want := map[uint64]int64{}
	for i, name := range []string{"chef", "baker", "cook", "grill"} {
		author := f.user(t, name)
		for j := 0; j < i; j++ {
			f.recipe(t, author, name+strings.Repeat("!", j+1), []*models.Tag{tag}, []*models.Ingredient{salt}, []int{1})
		}
		want[author.ID] = int64(i)
		require.NoError(t, f.relations.Add(ctx, RelationFollow, reader.ID, author.ID))
	}

	var counts int
	require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("count_recipe_counts", func(tx *gorm.DB) {
		if tx.Statement.Table == "recipes" && strings.Contains(strings.ToUpper(tx.Statement.SQL.String()), "COUNT(") {
			counts++
		}
	}))
	t.Cleanup(func() { _ = f.db.Callback().Query().Remove("count_recipe_counts") })

	items, _, err := f.users.Subscriptions(ctx, reader.ID, &types.SubscriptionQuery{})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, 1, counts)
	for _, item := range items {
		assert.Equal(t, want[item.ID], item.RecipesCount, item.Username)
	}
}

func TestUserService_UpdateMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cook := f.user(t, "cook")
	f.user(t, "taken")

	str := func(s string) *string { return &s }

	got, err := f.users.UpdateMe(ctx, cook.ID, &types.UpdateMeRequest{FirstName: str("Gordon")})
	require.NoError(t, err)
	assert.Equal(t, "Gordon", got.FirstName)
	assert.Equal(t, "Tester", got.LastName)
	assert.Equal(t, "cook", got.Username)

	// 保持自己的邮箱不算冲突
	got, err = f.users.UpdateMe(ctx, cook.ID, &types.UpdateMeRequest{
		Email:    str(" cook@example.com "),
		Username: str("chef"),
	})
	require.NoError(t, err)
	assert.Equal(t, "chef", got.Username)
	assert.Equal(t, "cook@example.com", got.Email)

	var e *errs.Error
	_, err = f.users.UpdateMe(ctx, cook.ID, &types.UpdateMeRequest{Email: str("taken@example.com")})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Equal(t, "email", e.Field)

	_, err = f.users.UpdateMe(ctx, cook.ID, &types.UpdateMeRequest{Username: str("taken")})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "username", e.Field)

	var stored models.User
	require.NoError(t, f.db.First(&stored, cook.ID).Error)
	assert.Equal(t, "chef", stored.Username)
	assert.Equal(t, "Gordon", stored.FirstName)
	assert.Equal(t, "cook@example.com", stored.Email)

	_, err = f.users.UpdateMe(ctx, 404, &types.UpdateMeRequest{})
	assert.True(t, errs.Is(err, errs.KindNotFound))

	_, err = f.users.UpdateMe(ctx, cook.ID, &types.UpdateMeRequest{})
	assert.NoError(t, err)
}
