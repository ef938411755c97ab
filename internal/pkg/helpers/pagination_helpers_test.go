package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func listParams(t *testing.T, query string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return ParseListParams(c)
}

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, DefaultLimit},
		{"explicit", "page=3&limit=50", 3, 50},
		{"zero page", "page=0", 1, DefaultLimit},
		{"negative page", "page=-2", 1, DefaultLimit},
		{"limit above cap", "limit=500", 1, DefaultLimit},
		{"garbage", "page=abc&limit=xyz", 1, DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := listParams(t, tt.query)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), Offset(1, 20))
	assert.Equal(t, uint64(40), Offset(3, 20))
	assert.Equal(t, uint64(0), Offset(0, 20))
	assert.Equal(t, uint64(0), Offset(-1, -1))
}

func TestNewListResponse(t *testing.T) {
	t.Run("total pages round up", func(t *testing.T) {
		resp := NewListResponse([]int{}, 41, 1, 20)
		assert.Equal(t, int64(41), resp.TotalCount)
		assert.Equal(t, 3, resp.TotalPages)
	})

	t.Run("empty collection still has one page", func(t *testing.T) {
		resp := NewListResponse([]int{}, 0, 1, 20)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Equal(t, 1, resp.CurrentPage)
	})

	t.Run("page clamped to last", func(t *testing.T) {
		resp := NewListResponse([]int{}, 10, 9, 20)
		assert.Equal(t, 1, resp.CurrentPage)
	})
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 168*time.Hour, ParseDuration("168h", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("one week", time.Hour))
}
