package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"article-backend/internal/config"
	"article-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("无法创建测试数据库: %v", err)
	}
	if err := db.AutoMigrate(&models.Tag{}, &models.Article{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Server.RequestsPerMinute = 10000

	return Setup(db, cfg)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("序列化请求体失败: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return resp.Data
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health 期望 200，实际 %d", w.Code)
	}
}

func TestCreateAndReadArticle(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "接口测试",
		"text":  "正文",
		"tags":  []string{"golang", "web"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("创建期望 200，实际 %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w)
	id := int(data["id"].(float64))
	if id == 0 {
		t.Fatal("响应里应有文章 id")
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/article/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("读取期望 200，实际 %d", w.Code)
	}

	data = decodeData(t, w)
	tags, ok := data["tags"].([]interface{})
	if !ok || len(tags) != 2 {
		t.Fatalf("详情应返回标签名列表: %v", data["tags"])
	}
	if tags[0] != "golang" || tags[1] != "web" {
		t.Errorf("标签名错误: %v", tags)
	}
}

func TestReadMissingArticleReturns404(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/article/4040", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际 %d", w.Code)
	}
}

func TestCreateArticleValidation(t *testing.T) {
	router := setupRouter(t)

	// 超过 6 个标签
	w := doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "标签过多",
		"tags":  []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("7 个标签应 422，实际 %d", w.Code)
	}

	// 空标题
	w = doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("空标题应 422，实际 %d", w.Code)
	}
}

func TestDeleteFolderViaAPI(t *testing.T) {
	router := setupRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/article/folder", gin.H{
		"title": "目录",
		"tags":  []string{"归档"},
	})
	folderID := int(decodeData(t, w)["id"].(float64))

	doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "子文章",
		"pid":   folderID,
		"tags":  []string{"归档"},
	})

	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/article/%d", folderID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("删除期望 200，实际 %d", w.Code)
	}

	// 子文章也应一并消失
	var listResp struct {
		Data models.PageResult `json:"data"`
	}
	w = doJSON(t, router, http.MethodGet, "/api/article", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("解析列表失败: %v", err)
	}
	if listResp.Data.Total != 0 {
		t.Errorf("删除后列表应为空，实际 total=%d", listResp.Data.Total)
	}
}

func TestTagListOrderedByWeight(t *testing.T) {
	router := setupRouter(t)

	doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "一",
		"tags":  []string{"热门", "冷门"},
	})
	doJSON(t, router, http.MethodPost, "/api/article", gin.H{
		"title": "二",
		"tags":  []string{"热门"},
	})

	w := doJSON(t, router, http.MethodGet, "/api/tag", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("标签列表期望 200，实际 %d", w.Code)
	}

	var resp struct {
		Data struct {
			Total int          `json:"total"`
			List  []models.Tag `json:"list"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	if resp.Data.Total != 2 {
		t.Fatalf("total 期望 2，实际 %d", resp.Data.Total)
	}
	if resp.Data.List[0].Name != "热门" || resp.Data.List[0].Weight != 2 {
		t.Errorf("权重最高的标签应排第一: %+v", resp.Data.List)
	}
}

func TestBatchDelete(t *testing.T) {
	router := setupRouter(t)

	var ids []int
	for i := 0; i < 3; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/article", gin.H{
			"title": fmt.Sprintf("批量%d", i),
		})
		ids = append(ids, int(decodeData(t, w)["id"].(float64)))
	}

	w := doJSON(t, router, http.MethodDelete, "/api/article", gin.H{
		"ids": ids[:2],
	})
	if w.Code != http.StatusOK {
		t.Fatalf("批量删除期望 200，实际 %d", w.Code)
	}

	var listResp struct {
		Data models.PageResult `json:"data"`
	}
	w = doJSON(t, router, http.MethodGet, "/api/article", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("解析列表失败: %v", err)
	}
	if listResp.Data.Total != 1 {
		t.Errorf("应剩 1 篇，实际 %d", listResp.Data.Total)
	}
}
