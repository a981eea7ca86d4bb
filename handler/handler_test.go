package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Foodgram/config"
	"Foodgram/dao"
	"Foodgram/dao/cache"
	"Foodgram/models"
	"Foodgram/pkg/database"
	"Foodgram/pkg/storage"
	"Foodgram/pkg/validate"
	"Foodgram/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validate.Register())

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

	conf, err := config.Parse([]byte("jwt:\n  secret: handler-secret\n"))
	require.NoError(t, err)
	store := storage.NewLocal(&config.LocalConfig{Root: t.TempDir(), BaseURL: "/media"})

	users := dao.NewUsers(db)
	recipes := dao.NewRecipeDAO(db)
	carts := dao.NewShoppingCartDAO(db)
	tags := dao.NewTagDAO(db)
	ingredients := dao.NewIngredientDAO(db)

	authService := &service.AuthService{Config: conf, UsersRepo: users, TokenStorage: cache.NewTokenStorage(rds)}
	relationService := &service.RelationService{
		FavoriteDAO:     dao.NewFavoriteDAO(db),
		ShoppingCartDAO: carts,
		FollowDAO:       dao.NewFollowDAO(db),
		RecipeDAO:       recipes,
		UserDAO:         users,
		Cache:           cache.NewRelationStorage(rds, conf),
	}
	recipeService := &service.RecipeService{
		Config:          conf.Recipe,
		RecipeDAO:       recipes,
		TagDAO:          tags,
		IngredientDAO:   ingredients,
		ImageService:    &service.ImageService{Config: conf.Recipe, Storage: store},
		RelationService: relationService,
	}

	r := gin.New()
	api := r.Group("/api")
	(&Auth{AuthService: authService}).RegisterRouter(api)
	(&User{
		AuthService:     authService,
		UserService:     &service.UserService{UsersRepo: users, RecipeDAO: recipes, RelationService: relationService},
		RelationService: relationService,
	}).RegisterRouter(api)
	(&Recipe{
		AuthService:     authService,
		RecipeService:   recipeService,
		RelationService: relationService,
		ShoppingService: &service.ShoppingService{ShoppingCartDAO: carts},
	}).RegisterRouter(api)
	(&Tag{TagService: &service.TagService{TagDAO: tags}}).RegisterRouter(api)
	(&Ingredient{IngredientService: &service.IngredientService{IngredientDAO: ingredients}}).RegisterRouter(api)

	return &testServer{db: db, engine: r}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// signup 注册并登录，返回用户 id 与 token
func (s *testServer) signup(t *testing.T, username string) (uint64, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users", "", gin.H{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "First",
		"last_name":  "Last",
		"password":   "secret-password",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := gjson.Get(w.Body.String(), "data.id").Uint()

	w = s.do(t, http.MethodPost, "/api/auth/token/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "secret-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := gjson.Get(w.Body.String(), "data.auth_token").String()
	require.NotEmpty(t, token)
	return id, token
}

func (s *testServer) seedCatalog(t *testing.T) (*models.Tag, *models.Ingredient, *models.Ingredient) {
	t.Helper()
	tag := &models.Tag{Name: "Breakfast", Slug: "breakfast", Color: "#E26C2D"}
	flour := &models.Ingredient{Name: "flour", MeasurementUnit: "g"}
	sugar := &models.Ingredient{Name: "sugar", MeasurementUnit: "g"}
	require.NoError(t, s.db.Create(tag).Error)
	require.NoError(t, s.db.Create(flour).Error)
	require.NoError(t, s.db.Create(sugar).Error)
	return tag, flour, sugar
}

func recipeBody(t *testing.T, name string, tagID uint64, amounts map[uint64]int) gin.H {
	t.Helper()
	ingredients := make([]gin.H, 0, len(amounts))
	for id, amount := range amounts {
		ingredients = append(ingredients, gin.H{"id": id, "amount": amount})
	}
	return gin.H{
		"name":         name,
		"text":         "Mix and bake",
		"cooking_time": 20,
		"tags":         []uint64{tagID},
		"ingredients":  ingredients,
		"image":        pngDataURI(t),
	}
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
