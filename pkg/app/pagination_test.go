package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlirezaNezami96/note-reminder-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestGetPage(t *testing.T) {
	c, _ := testContext("/notes")
	assert.Equal(t, 1, GetPage(c))

	c, _ = testContext("/notes?page=0")
	assert.Equal(t, 1, GetPage(c))

	c, _ = testContext("/notes?page=3")
	assert.Equal(t, 3, GetPage(c))
}

func TestGetPageSizeWithConfig(t *testing.T) {
	cfg := PaginationConfig{DefaultPageSize: 5, MaxPageSize: 20}

	c, _ := testContext("/notes")
	assert.Equal(t, 5, GetPageSizeWithConfig(c, cfg))

	c, _ = testContext("/notes?pageSize=12")
	assert.Equal(t, 12, GetPageSizeWithConfig(c, cfg))

	c, _ = testContext("/notes?pageSize=999")
	assert.Equal(t, 20, GetPageSizeWithConfig(c, cfg))
}

func TestGetPageOffset(t *testing.T) {
	assert.Equal(t, 0, GetPageOffset(1, 10))
	assert.Equal(t, 20, GetPageOffset(3, 10))
}

func TestToResponseList_EchoesResolvedPageSize(t *testing.T) {
	// pageSize=500 clamps to a configured max of 20; the pager must echo
	// the value the query actually ran with, not the package default.
	c, w := testContext("/notes?page=2&pageSize=500")

	cfg := PaginationConfig{DefaultPageSize: 5, MaxPageSize: 20}
	page := GetPage(c)
	pageSize := GetPageSizeWithConfig(c, cfg)
	require.Equal(t, 20, pageSize)

	NewResponse(c).ToResponseList(code.Success, []string{"a"}, page, pageSize, 41)

	var res struct {
		Data struct {
			Pager Pager `json:"pager"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Data.Pager.Page)
	assert.Equal(t, 20, res.Data.Pager.PageSize)
	assert.Equal(t, 41, res.Data.Pager.TotalRows)
}
