package di

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"company_intel/internal/feature/analysis/adapters/gemini"
	"company_intel/internal/feature/analysis/adapters/openai"
	"company_intel/internal/feature/analysis/adapters/tavily"
	"company_intel/internal/platform/cache"
	"company_intel/internal/platform/db"
)

func TestNewChatModel(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantErr  string
		wantType any
	}{
		{
			name:     "gemini by default",
			env:      map[string]string{"LLM_PROVIDER": "", "GEMINI_API_KEY": "test-key"},
			wantType: &gemini.Client{},
		},
		{
			name:     "openai",
			env:      map[string]string{"LLM_PROVIDER": "OpenAI", "OPENAI_API_KEY": "sk-test"},
			wantType: &openai.Client{},
		},
		{
			name:    "openai without key",
			env:     map[string]string{"LLM_PROVIDER": "openai", "OPENAI_API_KEY": ""},
			wantErr: "OPENAI_API_KEY is required",
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"LLM_PROVIDER": "llama"},
			wantErr: `unsupported LLM_PROVIDER "llama"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			model, err := NewChatModel(context.Background())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, model)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, model)
		})
	}
}

func TestNewSearcher(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "tvly-test")

	t.Run("without redis", func(t *testing.T) {
		assert.IsType(t, &tavily.Client{}, NewSearcher(nil, time.Minute))
	})

	t.Run("with redis", func(t *testing.T) {
		rdb, _ := redismock.NewClientMock()
		assert.IsType(t, &cache.CachingSearcher{}, NewSearcher(rdb, time.Minute))
	})
}

func TestNewHistoryRepository(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		repo, gdb, err := NewHistoryRepository(db.Config{Driver: db.DriverNone})
		require.NoError(t, err)
		assert.NotNil(t, repo)
		assert.Nil(t, gdb)

		recs, err := repo.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, gdb, err := NewHistoryRepository(db.Config{Driver: db.DriverSQLite, SQLitePath: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, gdb)
		assert.True(t, gdb.Migrator().HasTable("analysis_records"))

		recs, err := repo.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, _, err := NewHistoryRepository(db.Config{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "open database")
	})
}

func TestNewOrchestrator(t *testing.T) {
	t.Setenv("EVENT_DELAY", "0s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_PROVIDER", "openai")

	llm, err := NewChatModel(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, NewOrchestrator(llm, NewSearcher(nil, 0), nil))
}
