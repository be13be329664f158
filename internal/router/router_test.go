// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/musichub/musichub-backend/internal/config"
	"github.com/musichub/musichub-backend/internal/domain"
	"github.com/musichub/musichub-backend/internal/models"
	"github.com/musichub/musichub-backend/internal/testutil"
	"github.com/musichub/musichub-backend/internal/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = testutil.NewDB(suite.T())

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1, RefreshTokenTTL: 24},
		I18n:        config.I18nConfig{DefaultLocale: "en"},
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		Storage: config.StorageConfig{
			LocalPath:     suite.T().TempDir(),
			PublicBaseURL: "/uploads",
			MaxUploadMB:   1,
		},
	}

	r, err := Initialize(suite.db, cfg)
	suite.Require().NoError(err)
	suite.router = r
}

func (suite *RouterTestSuite) tokenFor(user *models.User) string {
	token, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), 1)
	suite.Require().NoError(err)
	return token
}

func (suite *RouterTestSuite) do(method, path, token string, body interface{}) (int, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (suite *RouterTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "healthy")
}

func (suite *RouterTestSuite) TestRegisterAndLogin() {
	code, resp := suite.do(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"username": "night_owl",
		"email":    "owl@example.com",
		"password": "TestPass123!",
		"role":     "listener",
	})
	suite.Require().Equal(http.StatusCreated, code)
	suite.True(resp.Success)

	var registered struct {
		Token string `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &registered))
	suite.NotEmpty(registered.Token)

	code, resp = suite.do(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"login":    "night_owl",
		"password": "TestPass123!",
	})
	suite.Require().Equal(http.StatusOK, code)

	var loggedIn struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &loggedIn))
	suite.Equal("listener", loggedIn.User.Role)

	code, resp = suite.do(http.MethodGet, "/v1/auth/me", loggedIn.Token, nil)
	suite.Equal(http.StatusOK, code)
	suite.True(resp.Success)

	code, resp = suite.do(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"login":    "night_owl",
		"password": "wrong",
	})
	suite.Equal(http.StatusUnauthorized, code)
	suite.Equal("UNAUTHORIZED", resp.Error.Code)
}

func (suite *RouterTestSuite) TestRegisterRejectsAdmin() {
	code, resp := suite.do(http.MethodPost, "/v1/auth/register", "", map[string]interface{}{
		"username": "root_user",
		"email":    "root@example.com",
		"password": "TestPass123!",
		"role":     "admin",
	})
	suite.Equal(http.StatusBadRequest, code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
}

func (suite *RouterTestSuite) TestListenerIsRedirectedFromContracts() {
	listener := testutil.CreateUser(suite.T(), suite.db, domain.RoleListener)

	code, resp := suite.do(http.MethodGet, "/v1/contracts", suite.tokenFor(listener), nil)
	suite.Require().Equal(http.StatusForbidden, code)
	suite.Equal("FORBIDDEN", resp.Error.Code)

	var details struct {
		Redirect string `json:"redirect"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Error.Details, &details))
	suite.Equal(utils.DashboardPath, details.Redirect)
}

func (suite *RouterTestSuite) TestContractValidation() {
	manager := testutil.CreateUser(suite.T(), suite.db, domain.RoleLabelManager)
	artist := testutil.CreateUser(suite.T(), suite.db, domain.RoleArtist)
	token := suite.tokenFor(manager)

	contract := map[string]interface{}{
		"artist_id":              artist.ID,
		"contract_type":          "distribution",
		"artist_royalty_percent": 60,
		"label_royalty_percent":  30,
		"duration_months":        12,
		"start_date":             "2024-01-01",
	}

	code, resp := suite.do(http.MethodPost, "/v1/contracts", token, contract)
	suite.Require().Equal(http.StatusBadRequest, code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)

	var fields []utils.ValidationError
	suite.Require().NoError(json.Unmarshal(resp.Error.Details, &fields))
	suite.Require().Len(fields, 1)
	suite.Equal("royalty_split", fields[0].Field)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Contract{}).Count(&count).Error)
	suite.Zero(count)

	contract["label_royalty_percent"] = 40
	code, resp = suite.do(http.MethodPost, "/v1/contracts", token, contract)
	suite.Require().Equal(http.StatusCreated, code)

	var created struct {
		ContractType string `json:"contract_type"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &created))
	suite.Equal("distribution", created.ContractType)
	suite.NotEmpty(resp.Meta["message"])

	contract["start_date"] = "01/02/2024"
	code, resp = suite.do(http.MethodPost, "/v1/contracts", token, contract)
	suite.Equal(http.StatusBadRequest, code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
}

func (suite *RouterTestSuite) TestNotFound() {
	code, resp := suite.do(http.MethodGet, "/v1/albums/not-a-uuid", "", nil)
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("NOT_FOUND", resp.Error.Code)
	suite.Equal("Album not found", resp.Error.Message)

	manager := testutil.CreateUser(suite.T(), suite.db, domain.RoleLabelManager)
	code, resp = suite.do(http.MethodGet, "/v1/contracts/00000000-0000-0000-0000-000000000001", suite.tokenFor(manager), nil)
	suite.Equal(http.StatusNotFound, code)
	suite.Equal("NOT_FOUND", resp.Error.Code)
}

func (suite *RouterTestSuite) TestQuickAddReportsDuplicate() {
	artist := testutil.CreateUser(suite.T(), suite.db, domain.RoleArtist)
	listener := testutil.CreateUser(suite.T(), suite.db, domain.RoleListener)
	track := testutil.CreateTrack(suite.T(), suite.db, testutil.CreateAlbum(suite.T(), suite.db, artist, "Dawn"), 1, testutil.IntPtr(200))
	token := suite.tokenFor(listener)

	code, resp := suite.do(http.MethodPost, "/v1/playlists", token, map[string]interface{}{"name": "Mix"})
	suite.Require().Equal(http.StatusCreated, code)

	var playlist struct {
		ID string `json:"id"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &playlist))

	path := "/v1/tracks/" + track.ID.String() + "/quick-add"
	body := map[string]interface{}{"playlist_id": playlist.ID}

	code, resp = suite.do(http.MethodPost, path, token, body)
	suite.Require().Equal(http.StatusOK, code)
	suite.Equal("Track added to Mix", resp.Meta["message"])

	code, resp = suite.do(http.MethodPost, path, token, body)
	suite.Require().Equal(http.StatusOK, code)
	suite.Equal("Track is already in Mix", resp.Meta["message"])

	code, resp = suite.do(http.MethodGet, "/v1/playlists/"+playlist.ID, token, nil)
	suite.Require().Equal(http.StatusOK, code)

	var view struct {
		TracksCount     int    `json:"tracks_count"`
		DurationDisplay string `json:"duration_display"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &view))
	suite.Equal(1, view.TracksCount)
	suite.Equal("0 hours 3 minutes", view.DurationDisplay)
}

func (suite *RouterTestSuite) TestDashboardFollowsRole() {
	producer := testutil.CreateUser(suite.T(), suite.db, domain.RoleProducer)

	code, resp := suite.do(http.MethodGet, "/v1/dashboard", suite.tokenFor(producer), nil)
	suite.Require().Equal(http.StatusOK, code)

	var dashboard struct {
		Role string `json:"role"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &dashboard))
	suite.Equal("producer", dashboard.Role)

	code, _ = suite.do(http.MethodGet, "/v1/dashboard", "", nil)
	suite.Equal(http.StatusUnauthorized, code)
}
