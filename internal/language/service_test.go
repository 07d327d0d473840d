package language

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"nltools/internal/docs"
)

// mockProvider is a canned vendor integration: it populates exactly the
// response fields implied by the requested features.
type mockProvider struct {
	err error

	mu       sync.Mutex
	requests []AnalysisRequest

	handle    any
	buildMu   sync.Mutex
	buildings int32
}

func (m *mockProvider) Process(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	resp := &AnalysisResponse{Language: "en", Raw: "mock-native-result"}
	if req.HasFeature(FeatureSentiment) {
		score, magnitude := float32(0.5), float32(0.3)
		resp.SentimentScore = &score
		resp.SentimentMagnitude = &magnitude
	}
	if req.HasFeature(FeatureEntities) {
		resp.Entities = []Entity{{
			Name:     "Alice",
			Type:     "PERSON",
			Salience: 0.8,
			Mentions: []string{"Alice"},
			Metadata: map[string]string{"wikipedia_url": "https://en.wikipedia.org/wiki/Alice"},
		}}
	}
	if req.HasFeature(FeatureSyntax) {
		resp.Tokens = []Token{{
			Text:        "dummy",
			BeginOffset: UnknownOffset,
			Tag:         "NOUN",
			Lemma:       "dummy",
			Gender:      "GENDER_UNKNOWN",
			Mood:        "MOOD_UNKNOWN",
			Person:      "PERSON_UNKNOWN",
			Proper:      "NOT_PROPER",
			Form:        "FORM_UNKNOWN",
			Aspect:      "ASPECT_UNKNOWN",
			Case:        "CASE_UNKNOWN",
			Number:      "SINGULAR",
		}}
	}
	return resp, nil
}

func (m *mockProvider) SupportedFeatures() []Feature {
	return []Feature{FeatureSentiment, FeatureEntities, FeatureSyntax}
}

func (m *mockProvider) NativeClient(ctx context.Context) (any, error) {
	m.buildMu.Lock()
	defer m.buildMu.Unlock()
	if m.handle == nil {
		atomic.AddInt32(&m.buildings, 1)
		m.handle = new(int)
	}
	return m.handle, nil
}

func (m *mockProvider) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// stubExtractor returns the blob bytes as text, or a fixed error.
type stubExtractor struct {
	err error
}

func (s *stubExtractor) ExtractText(ctx context.Context, blob *docs.Blob) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return string(blob.Data), nil
}

func newMockService(t *testing.T) (*Service, *mockProvider) {
	t.Helper()
	mock := &mockProvider{}
	registry := NewRegistry("mock")
	registry.Register("mock", mock)
	return NewService(registry, &stubExtractor{}), mock
}

func TestAnalyzeTextEmptyFeatures(t *testing.T) {
	service, _ := newMockService(t)

	for _, providerName := range []string{"", "mock", "no-such-provider"} {
		_, err := service.AnalyzeText(context.Background(), providerName, "some text", nil, EncodingNone)
		require.Error(t, err, "provider %q", providerName)
		require.ErrorIs(t, err, ErrInvalidArgument, "provider %q", providerName)
	}
}

func TestAnalyzeTextFieldsMatchFeatures(t *testing.T) {
	service, _ := newMockService(t)
	ctx := context.Background()

	tests := []struct {
		name          string
		features      []Feature
		wantSentiment bool
		wantEntities  bool
		wantTokens    bool
	}{
		{"sentiment only", []Feature{FeatureSentiment}, true, false, false},
		{"entities only", []Feature{FeatureEntities}, false, true, false},
		{"syntax only", []Feature{FeatureSyntax}, false, false, true},
		{"sentiment and entities", []Feature{FeatureSentiment, FeatureEntities}, true, true, false},
		{"all", []Feature{FeatureSentiment, FeatureEntities, FeatureSyntax}, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.AnalyzeText(ctx, "", "some text", tt.features, EncodingNone)
			require.NoError(t, err)
			require.Equal(t, tt.wantSentiment, resp.SentimentScore != nil)
			require.Equal(t, tt.wantSentiment, resp.SentimentMagnitude != nil)
			require.Equal(t, tt.wantEntities, resp.Entities != nil)
			require.Equal(t, tt.wantTokens, resp.Tokens != nil)
		})
	}
}

func TestAnalyzeTextSentimentScenario(t *testing.T) {
	service, _ := newMockService(t)

	resp, err := service.AnalyzeText(context.Background(), "", "dummy text", []Feature{FeatureSentiment}, EncodingNone)
	require.NoError(t, err)

	require.Equal(t, "en", resp.Language)
	require.NotNil(t, resp.SentimentScore)
	require.NotNil(t, resp.SentimentMagnitude)
	require.Equal(t, float32(0.5), *resp.SentimentScore)
	require.Equal(t, float32(0.3), *resp.SentimentMagnitude)
	require.Nil(t, resp.Sentences)
	require.Nil(t, resp.Entities)
	require.Nil(t, resp.Tokens)
}

func TestAnalyzeTextUnknownProvider(t *testing.T) {
	service, _ := newMockService(t)

	_, err := service.AnalyzeText(context.Background(), "no-such-provider", "text", []Feature{FeatureSentiment}, EncodingNone)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownProvider)

	var unknownErr *UnknownProviderError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "no-such-provider", unknownErr.Name)
}

func TestAnalyzeTextBlankNameEqualsDefault(t *testing.T) {
	service, _ := newMockService(t)
	ctx := context.Background()

	byBlank, blankName, err := service.Registry().Resolve("")
	require.NoError(t, err)
	byName, err := service.Registry().Get("mock")
	require.NoError(t, err)
	require.Equal(t, "mock", blankName)
	require.Same(t, byName.(*mockProvider), byBlank.(*mockProvider))

	fromBlank, err := service.AnalyzeText(ctx, "", "text", []Feature{FeatureSentiment}, EncodingNone)
	require.NoError(t, err)
	fromName, err := service.AnalyzeText(ctx, "mock", "text", []Feature{FeatureSentiment}, EncodingNone)
	require.NoError(t, err)
	require.Equal(t, fromName, fromBlank)
}

func TestAnalyzeTextProviderFailurePreservesCause(t *testing.T) {
	cause := errors.New("language latin is not supported")
	mock := &mockProvider{err: cause}
	registry := NewRegistry("mock")
	registry.Register("mock", mock)
	service := NewService(registry, nil)

	_, err := service.AnalyzeText(context.Background(), "", "lorem ipsum", []Feature{FeatureSentiment}, EncodingNone)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrAnalysisFailed)
	require.ErrorIs(t, err, cause)

	var analysisErr *AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	require.Equal(t, "mock", analysisErr.Provider)
}

func TestAnalyzeBlob(t *testing.T) {
	service, mock := newMockService(t)
	ctx := context.Background()

	_, err := service.AnalyzeBlob(ctx, "", nil, []Feature{FeatureSentiment})
	require.ErrorIs(t, err, ErrInvalidArgument)

	blob := docs.NewBlob("note.txt", "text/plain", []byte("dummy text"))
	resp, err := service.AnalyzeBlob(ctx, "", blob, []Feature{FeatureSentiment})
	require.NoError(t, err)
	require.Equal(t, "en", resp.Language)

	// Extraction loses offsets, so the blob path passes no encoding.
	last := mock.requests[len(mock.requests)-1]
	require.Equal(t, EncodingNone, last.Encoding)
	require.Equal(t, "dummy text", last.Text)
}

func TestAnalyzeBlobExtractionFailure(t *testing.T) {
	mock := &mockProvider{}
	registry := NewRegistry("mock")
	registry.Register("mock", mock)
	service := NewService(registry, &stubExtractor{err: errors.New("unsupported mime type")})

	blob := docs.NewBlob("img.bin", "application/octet-stream", []byte{0x1})
	_, err := service.AnalyzeBlob(context.Background(), "", blob, []Feature{FeatureSentiment})
	require.ErrorIs(t, err, ErrExtraction)
	require.Zero(t, mock.requestCount(), "provider must not be called when extraction fails")
}

func TestAnalyzeDocument(t *testing.T) {
	service, _ := newMockService(t)
	ctx := context.Background()

	_, err := service.AnalyzeDocument(ctx, "", nil, "", []Feature{FeatureSentiment})
	require.ErrorIs(t, err, ErrInvalidArgument)

	empty := docs.NewDocument("File")
	_, err = service.AnalyzeDocument(ctx, "", empty, "", []Feature{FeatureSentiment})
	require.ErrorIs(t, err, ErrInvalidArgument)

	doc := docs.NewDocument("File")
	doc.AttachBlob("", docs.NewBlob("note.txt", "text/plain", []byte("dummy text")))
	resp, err := service.AnalyzeDocument(ctx, "", doc, "", []Feature{FeatureSentiment})
	require.NoError(t, err)
	require.Equal(t, "en", resp.Language)

	// Explicit field path resolves a named blob.
	attached := docs.NewDocument("File")
	attached.AttachBlob("files:attachment", docs.NewBlob("extra.txt", "text/plain", []byte("more text")))
	resp, err = service.AnalyzeDocument(ctx, "", attached, "files:attachment", []Feature{FeatureSentiment})
	require.NoError(t, err)
	require.NotNil(t, resp.SentimentScore)

	// The same document has nothing at the primary field.
	_, err = service.AnalyzeDocument(ctx, "", attached, "", []Feature{FeatureSentiment})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNativeClientSingleConstruction(t *testing.T) {
	mock := &mockProvider{}
	ctx := context.Background()

	const callers = 32
	handles := make([]any, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handle, err := mock.NativeClient(ctx)
			require.NoError(t, err)
			handles[i] = handle
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&mock.buildings))
	for i := 1; i < callers; i++ {
		require.Same(t, handles[0], handles[i])
	}
}
