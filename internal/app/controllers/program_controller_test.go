package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RachidAzrou/madrassa-sub000/internal/app/models"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/models/dto"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/repositories"
	"github.com/RachidAzrou/madrassa-sub000/internal/app/services"
	"github.com/RachidAzrou/madrassa-sub000/internal/middleware"
	"github.com/RachidAzrou/madrassa-sub000/internal/pkg/apperrors"
)

// memProgramStore backs the real service so requests run the full
// controller-service path.
type memProgramStore struct {
	nextID   int64
	programs map[int64]*models.Program
}

func (m *memProgramStore) Create(_ context.Context, program *models.Program) error {
	m.nextID++
	program.ID = m.nextID
	m.programs[program.ID] = program
	return nil
}

func (m *memProgramStore) GetByID(_ context.Context, schoolID, id int64) (*models.Program, error) {
	if p, ok := m.programs[id]; ok && p.SchoolID == schoolID {
		return p, nil
	}
	return nil, apperrors.ErrProgramNotFound
}

func (m *memProgramStore) List(_ context.Context, schoolID int64, _ repositories.ListFilter) ([]*models.Program, int64, error) {
	var out []*models.Program
	for _, p := range m.programs {
		if p.SchoolID == schoolID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memProgramStore) ExistsByCode(_ context.Context, schoolID int64, code string, excludeID int64) (bool, error) {
	for _, p := range m.programs {
		if p.SchoolID == schoolID && p.Code == code && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProgramStore) Update(_ context.Context, program *models.Program) error {
	m.programs[program.ID] = program
	return nil
}

func (m *memProgramStore) HasCourses(_ context.Context, _, _ int64) (bool, error) {
	return false, nil
}

func (m *memProgramStore) Delete(_ context.Context, _, id int64) error {
	delete(m.programs, id)
	return nil
}

func newProgramRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewProgramController(services.NewProgramService(&memProgramStore{programs: make(map[int64]*models.Program)}))

	router := gin.New()
	api := router.Group("/api", func(c *gin.Context) {
		c.Set(middleware.ContextSchoolIDKey, int64(1))
	})
	api.POST("/programs", ctrl.Create)
	api.GET("/programs/:id", ctrl.Get)
	return router
}

func postJSON(router *gin.Engine, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProgramControllerCreate(t *testing.T) {
	router := newProgramRouter()

	t.Run("created", func(t *testing.T) {
		rec := postJSON(router, "/api/programs", `{"name":"Arabisch jaar 1","code":"ARA-1","duration":1}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var program models.Program
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &program))
		assert.Equal(t, "ARA-1", program.Code)
		assert.Equal(t, int64(1), program.SchoolID)
	})

	t.Run("missing fields name their paths", func(t *testing.T) {
		rec := postJSON(router, "/api/programs", `{"name":"Arabisch jaar 2"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Validation failed", body.Message)

		paths := make([]string, 0, len(body.Errors))
		for _, fe := range body.Errors {
			paths = append(paths, fe.Path)
		}
		assert.Contains(t, paths, "code")
		assert.Contains(t, paths, "duration")
	})

	t.Run("duplicate code", func(t *testing.T) {
		rec := postJSON(router, "/api/programs", `{"name":"Arabisch eerste jaar","code":"ARA-1","duration":1}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Program code already exists", body.Message)
	})
}

func TestProgramControllerGet(t *testing.T) {
	router := newProgramRouter()

	rec := postJSON(router, "/api/programs", `{"name":"Koran","code":"KOR-1","duration":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/programs/1", nil)
		got := httptest.NewRecorder()
		router.ServeHTTP(got, req)
		assert.Equal(t, http.StatusOK, got.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/programs/42", nil)
		got := httptest.NewRecorder()
		router.ServeHTTP(got, req)
		assert.Equal(t, http.StatusNotFound, got.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/programs/abc", nil)
		got := httptest.NewRecorder()
		router.ServeHTTP(got, req)
		assert.Equal(t, http.StatusBadRequest, got.Code)
	})
}
