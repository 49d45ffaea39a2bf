package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/logic"
	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/remotelog"
	"github.com/akurlov/shortly/internal/repository"
	"github.com/akurlov/shortly/internal/resolver"
	"github.com/akurlov/shortly/internal/store/memory"
)

func BenchmarkShortenURL(b *testing.B) {
	gin.SetMode(gin.TestMode)

	kv, err := memory.NewMemoryStorage(nil)
	if err != nil {
		b.Fatalf(ErrorSetupStorage, err)
	}

	repo := repository.NewRepository(kv, zap.L().Sugar())
	diag := remotelog.NewLocal(zap.L().Sugar())
	core := logic.NewCoreLogic(testConfig, repo, zap.L().Sugar(), diag)
	res := resolver.NewResolver(core, diag)

	benchApp := NewApp(testConfig, core, res, zap.L().Sugar())
	r, err := benchApp.SetupRouter()
	if err != nil {
		b.Fatalf(ErrorSetupRouter, err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		obj, err := json.Marshal(models.ShortenReq{
			URL: fmt.Sprintf("https://example.com/page/%d", i),
		})
		if err != nil {
			b.Fatal(err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/shorten", bytes.NewBuffer(obj))
		req.Header.Add(contentType, applicationJSON)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
