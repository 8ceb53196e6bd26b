package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creative-eval-be/internal/constant"
	"creative-eval-be/internal/dto"
	"creative-eval-be/internal/pkg/serverutils"
	"creative-eval-be/pkg/chat"
	"creative-eval-be/pkg/events"
	"creative-eval-be/pkg/llm"
)

// scriptedProvider plays back fragments and optionally fails afterwards.
type scriptedProvider struct {
	fragments []string
	err       error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return strings.Join(p.fragments, ""), p.err
}

func (p *scriptedProvider) ChatStream(ctx context.Context, history []llm.Message, out chan<- string, options ...llm.Option) error {
	for _, f := range p.fragments {
		out <- f
	}
	return p.err
}

func (p *scriptedProvider) GenerateStream(ctx context.Context, prompt string, out chan<- string, options ...llm.Option) error {
	return p.ChatStream(ctx, nil, out)
}

func defaultSettings() chat.Settings {
	return chat.Settings{
		Backend:           llm.BackendDummyEcho,
		Temperature:       0.7,
		TopP:              0.95,
		RepetitionPenalty: 1.1,
		MaxNewTokens:      512,
	}
}

func newChatService(build llm.BuildFunc) (IChatService, *chat.SessionStore, *recordingPublisher) {
	if build == nil {
		build = func(sel llm.Selection) (*llm.Handle, error) {
			return &llm.Handle{Selection: sel}, nil
		}
	}
	sessions := chat.NewSessionStore()
	pipeline := chat.NewPipeline(llm.NewHandleCache(build))
	pub := &recordingPublisher{}
	svc := NewChatService(sessions, pipeline, defaultSettings(), pub, nopLogger{})
	return svc, sessions, pub
}

func createSession(t *testing.T, svc IChatService) string {
	t.Helper()
	res, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionID)
	return res.SessionID
}

func TestCreateSessionUsesDefaults(t *testing.T) {
	svc, _, _ := newChatService(nil)
	id := createSession(t, svc)

	settings, err := svc.GetSettings(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "dummy_echo", settings.Backend)
	assert.Equal(t, 0.7, settings.Temperature)
	assert.Equal(t, 512, settings.MaxNewTokens)

	history, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRunTurnDummyEcho(t *testing.T) {
	svc, _, pub := newChatService(nil)
	id := createSession(t, svc)

	var fragments []string
	full, err := svc.RunTurn(context.Background(), id, "hi", func(fragment string) {
		fragments = append(fragments, fragment)
	})
	require.NoError(t, err)
	assert.Equal(t, "Echo: hi", full)
	assert.Equal(t, full, strings.Join(fragments, ""))

	history, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constant.RoleUser, history[0].Role)
	assert.Equal(t, "hi", history[0].Content)
	assert.Equal(t, constant.RoleAssistant, history[1].Role)
	assert.Equal(t, "Echo: hi", history[1].Content)

	published := pub.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.TypeChatTurnCompleted, published[0].EventType())
}

func TestRunTurnMultiTurnHistoryGrows(t *testing.T) {
	svc, _, _ := newChatService(nil)
	id := createSession(t, svc)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.RunTurn(context.Background(), id, content, nil)
		require.NoError(t, err)
	}

	history, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, history, 6)
	assert.Equal(t, "Echo: three", history[5].Content)
}

func TestRunTurnFailureKeepsUserMessageOnly(t *testing.T) {
	boom := errors.New("model crashed")
	svc, sessions, pub := newChatService(func(sel llm.Selection) (*llm.Handle, error) {
		return &llm.Handle{
			Selection:    sel,
			Provider:     &scriptedProvider{fragments: []string{"par", "tial"}, err: boom},
			Model:        "m",
			ChatTemplate: true,
		}, nil
	})
	id := createSession(t, svc)
	require.NoError(t, svc.UpdateSettings(context.Background(), id, &dto.ChatSettingsRequest{
		Backend:           "adapter_gpu",
		Temperature:       0.7,
		TopP:              0.95,
		RepetitionPenalty: 1.1,
		MaxNewTokens:      64,
	}))

	partial, err := svc.RunTurn(context.Background(), id, "hi", nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", partial)

	// The failed assistant turn is not recorded; the user message is.
	session, found := sessions.Get(id)
	require.True(t, found)
	messages, _ := session.Snapshot()
	require.Len(t, messages, 1)
	assert.Equal(t, constant.RoleUser, messages[0].Role)
	assert.Empty(t, pub.published())
}

func TestRunTurnBackendUnavailable(t *testing.T) {
	svc, _, _ := newChatService(func(sel llm.Selection) (*llm.Handle, error) {
		return nil, llm.ErrBackendUnavailable
	})
	id := createSession(t, svc)

	_, err := svc.RunTurn(context.Background(), id, "hi", nil)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.CodeBackendUnavailable, appErr.Code)
	assert.Equal(t, 503, appErr.Status)
}

func TestRunTurnUnknownSession(t *testing.T) {
	svc, _, _ := newChatService(nil)

	_, err := svc.RunTurn(context.Background(), "missing", "hi", nil)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestUpdateSettings(t *testing.T) {
	svc, _, _ := newChatService(nil)
	id := createSession(t, svc)

	err := svc.UpdateSettings(context.Background(), id, &dto.ChatSettingsRequest{
		Backend:           "adapter_cpu_base",
		BaseModel:         "qwen2.5:1.5b",
		Temperature:       1.2,
		TopP:              0.8,
		RepetitionPenalty: 1.3,
		MaxNewTokens:      256,
	})
	require.NoError(t, err)

	settings, err := svc.GetSettings(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "adapter_cpu_base", settings.Backend)
	assert.Equal(t, "qwen2.5:1.5b", settings.BaseModel)
	assert.Equal(t, 1.2, settings.Temperature)
	assert.Equal(t, 256, settings.MaxNewTokens)
}

func TestUpdateSettingsUnknownBackend(t *testing.T) {
	svc, _, _ := newChatService(nil)
	id := createSession(t, svc)

	err := svc.UpdateSettings(context.Background(), id, &dto.ChatSettingsRequest{Backend: "quantum"})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.CodeValidation, appErr.Code)
}

func TestClearSessionKeepsSettings(t *testing.T) {
	svc, _, _ := newChatService(nil)
	id := createSession(t, svc)

	_, err := svc.RunTurn(context.Background(), id, "hi", nil)
	require.NoError(t, err)
	require.NoError(t, svc.ClearSession(context.Background(), id))

	history, err := svc.GetHistory(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, history)

	settings, err := svc.GetSettings(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "dummy_echo", settings.Backend)
}

// Exercises the HTTP surface against an in-flight turn; meaningful under
// the race detector.
func TestSessionSafeUnderConcurrentAccess(t *testing.T) {
	fragments := make([]string, 200)
	for i := range fragments {
		fragments[i] = "x"
	}
	svc, _, _ := newChatService(func(sel llm.Selection) (*llm.Handle, error) {
		return &llm.Handle{
			Selection:    sel,
			Provider:     &scriptedProvider{fragments: fragments},
			Model:        "m",
			ChatTemplate: true,
		}, nil
	})
	id := createSession(t, svc)
	require.NoError(t, svc.UpdateSettings(context.Background(), id, &dto.ChatSettingsRequest{
		Backend:           "adapter_gpu",
		Temperature:       0.7,
		TopP:              0.95,
		RepetitionPenalty: 1.1,
		MaxNewTokens:      64,
	}))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			_, err := svc.RunTurn(context.Background(), id, "hi", nil)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, err := svc.GetHistory(context.Background(), id)
			assert.NoError(t, err)
			assert.NoError(t, svc.ClearSession(context.Background(), id))
			_, err = svc.GetSettings(context.Background(), id)
			assert.NoError(t, err)
		}
	}()

	wg.Wait()
}

func TestSessionLookupsOnMissingSession(t *testing.T) {
	svc, _, _ := newChatService(nil)

	var appErr *serverutils.AppError

	_, err := svc.GetHistory(context.Background(), "missing")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)

	_, err = svc.GetSettings(context.Background(), "missing")
	require.ErrorAs(t, err, &appErr)

	err = svc.ClearSession(context.Background(), "missing")
	require.ErrorAs(t, err, &appErr)
}
