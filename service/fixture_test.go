package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"Foodgram/config"
	"Foodgram/dao"
	"Foodgram/dao/cache"
	"Foodgram/models"
	"Foodgram/pkg/database"
	"Foodgram/pkg/encrypt"
	"Foodgram/pkg/storage"
	"Foodgram/types"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	conf  *config.Config
	db    *gorm.DB
	mr    *miniredis.Miniredis
	rds   *redis.Client
	store *storage.Local

	relations   *RelationService
	images      *ImageService
	recipes     *RecipeService
	shopping    *ShoppingService
	users       *UserService
	auth        *AuthService
	tags        *TagService
	ingredients *IngredientService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rds := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rds.Close() })

	conf, err := config.Parse([]byte("jwt:\n  secret: test-secret\n"))
	require.NoError(t, err)
	conf.Storage.Local = &config.LocalConfig{Root: t.TempDir(), BaseURL: "/media"}
	store := storage.NewLocal(conf.Storage.Local)

	f := &fixture{conf: conf, db: db, mr: mr, rds: rds, store: store}

	usersDAO := dao.NewUsers(db)
	recipeDAO := dao.NewRecipeDAO(db)
	tagDAO := dao.NewTagDAO(db)
	ingredientDAO := dao.NewIngredientDAO(db)
	cartDAO := dao.NewShoppingCartDAO(db)

	f.relations = &RelationService{
		FavoriteDAO:     dao.NewFavoriteDAO(db),
		ShoppingCartDAO: cartDAO,
		FollowDAO:       dao.NewFollowDAO(db),
		RecipeDAO:       recipeDAO,
		UserDAO:         usersDAO,
		Cache:           cache.NewRelationStorage(rds, conf),
	}
	f.images = &ImageService{Config: conf.Recipe, Storage: store}
	f.recipes = &RecipeService{
		Config:          conf.Recipe,
		RecipeDAO:       recipeDAO,
		TagDAO:          tagDAO,
		IngredientDAO:   ingredientDAO,
		ImageService:    f.images,
		RelationService: f.relations,
	}
	f.shopping = &ShoppingService{ShoppingCartDAO: cartDAO}
	f.users = &UserService{UsersRepo: usersDAO, RecipeDAO: recipeDAO, RelationService: f.relations}
	f.auth = &AuthService{Config: conf, UsersRepo: usersDAO, TokenStorage: cache.NewTokenStorage(rds)}
	f.tags = &TagService{TagDAO: tagDAO}
	f.ingredients = &IngredientService{IngredientDAO: ingredientDAO}
	return f
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := encrypt.HashPassword("secret-password")
	require.NoError(t, err)
	u := &models.User{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: username,
		LastName:  "Tester",
		Password:  hash,
	}
	require.NoError(t, f.db.Create(u).Error)
	return u
}

func (f *fixture) tag(t *testing.T, name, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Slug: slug, Color: "#E26C2D"}
	require.NoError(t, f.db.Create(tag).Error)
	return tag
}

func (f *fixture) ingredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()
	i := &models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, f.db.Create(i).Error)
	return i
}

// recipe 通过服务创建菜谱，amounts 与 ingredients 一一对应
func (f *fixture) recipe(t *testing.T, author *models.User, name string, tags []*models.Tag, ingredients []*models.Ingredient, amounts []int) *types.RecipeResponse {
	t.Helper()
	req := recipeRequest(name, tags, ingredients, amounts)
	req.Image = pngDataURI(t)
	resp, err := f.recipes.Create(context.Background(), author.ID, req)
	require.NoError(t, err)
	return resp
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func recipeRequest(name string, tags []*models.Tag, ingredients []*models.Ingredient, amounts []int) *types.RecipeRequest {
	req := &types.RecipeRequest{
		Name:        name,
		Text:        fmt.Sprintf("How to cook %s", name),
		CookingTime: 30,
	}
	for _, tag := range tags {
		req.Tags = append(req.Tags, tag.ID)
	}
	for i, ing := range ingredients {
		req.Ingredients = append(req.Ingredients, types.RecipeIngredientInput{ID: ing.ID, Amount: amounts[i]})
	}
	return req
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
