// Package google integrates the Google Cloud Natural Language API as an
// analysis provider.
//
// Credentials resolution, in order: the credentialFilePath parameter,
// the GOOGLE_CREDENTIALS inline JSON environment variable, then
// application default credentials (GOOGLE_APPLICATION_CREDENTIALS or
// ambient). The underlying LanguageServiceClient is constructed lazily
// on first use and reused for the process lifetime.
package google

import (
	"context"
	"fmt"
	"os"
	"sync"

	lang "cloud.google.com/go/language/apiv1"
	"cloud.google.com/go/language/apiv1/languagepb"
	"google.golang.org/api/option"

	"nltools/internal/language"
)

// Provider parameter keys, as they appear in the providers configuration.
const (
	CredentialFileParam = "credentialFilePath"
	AppNameParam        = "appName"
)

// Provider calls the Google Cloud Natural Language API. Safe for
// concurrent use; the vendor client is shared across calls.
type Provider struct {
	params map[string]string

	mu     sync.Mutex
	client *lang.Client
}

// New builds a Google provider from its parameter map. It matches the
// language.Factory signature; the vendor client is not dialed here.
func New(params map[string]string) (language.Provider, error) {
	if params == nil {
		params = map[string]string{}
	}
	return &Provider{params: params}, nil
}

// SupportedFeatures returns the full feature set: Google's annotateText
// covers sentiment, entities and syntax in a single call.
func (p *Provider) SupportedFeatures() []language.Feature {
	return []language.Feature{
		language.FeatureSentiment,
		language.FeatureEntities,
		language.FeatureSyntax,
	}
}

// NativeClient returns the shared LanguageServiceClient, constructing it
// on first use.
func (p *Provider) NativeClient(ctx context.Context) (any, error) {
	return p.languageClient(ctx)
}

// Close releases the vendor client, if one was constructed.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// languageClient lazily constructs the vendor client. The mutex makes
// first use race-free: one caller constructs, concurrent callers block
// and then observe the published client.
func (p *Provider) languageClient(ctx context.Context) (*lang.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	var opts []option.ClientOption
	if credFile := p.params[CredentialFileParam]; credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	} else if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	}
	// Otherwise application default credentials apply.

	client, err := lang.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create language client: %w", err)
	}
	p.client = client
	return p.client, nil
}

// Process issues one annotateText call requesting exactly the features
// in the request, then normalizes the vendor response.
func (p *Provider) Process(ctx context.Context, req language.AnalysisRequest) (*language.AnalysisResponse, error) {
	client, err := p.languageClient(ctx)
	if err != nil {
		return nil, err
	}

	greq := &languagepb.AnnotateTextRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{Content: req.Text},
			Type:   languagepb.Document_PLAIN_TEXT,
		},
		Features: &languagepb.AnnotateTextRequest_Features{
			ExtractDocumentSentiment: req.HasFeature(language.FeatureSentiment),
			ExtractEntities:          req.HasFeature(language.FeatureEntities),
			ExtractSyntax:            req.HasFeature(language.FeatureSyntax),
		},
	}
	if req.Encoding != language.EncodingNone {
		greq.EncodingType = languagepb.EncodingType(req.Encoding)
	}

	resp, err := client.AnnotateText(ctx, greq)
	if err != nil {
		return nil, fmt.Errorf("annotate text: %w", err)
	}

	return normalize(req, resp), nil
}

// normalize maps the vendor response into the normalized model,
// populating only the fields implied by the requested features. The
// untouched vendor response is kept in Raw.
func normalize(req language.AnalysisRequest, resp *languagepb.AnnotateTextResponse) *language.AnalysisResponse {
	out := &language.AnalysisResponse{
		Language: resp.GetLanguage(),
		Raw:      resp,
	}

	if req.HasFeature(language.FeatureSentiment) {
		if s := resp.GetDocumentSentiment(); s != nil {
			score := s.GetScore()
			magnitude := s.GetMagnitude()
			out.SentimentScore = &score
			out.SentimentMagnitude = &magnitude
		}
		out.Sentences = make([]language.Sentence, 0, len(resp.GetSentences()))
		for _, sentence := range resp.GetSentences() {
			out.Sentences = append(out.Sentences, language.Sentence{
				Text:      sentence.GetText().GetContent(),
				Score:     sentence.GetSentiment().GetScore(),
				Magnitude: sentence.GetSentiment().GetMagnitude(),
			})
		}
	}

	if req.HasFeature(language.FeatureEntities) {
		out.Entities = make([]language.Entity, 0, len(resp.GetEntities()))
		for _, entity := range resp.GetEntities() {
			mentions := make([]string, 0, len(entity.GetMentions()))
			for _, mention := range entity.GetMentions() {
				mentions = append(mentions, mention.GetText().GetContent())
			}
			out.Entities = append(out.Entities, language.Entity{
				Name:     entity.GetName(),
				Type:     entity.GetType().String(),
				Salience: entity.GetSalience(),
				Mentions: mentions,
				Metadata: entity.GetMetadata(),
			})
		}
	}

	if req.HasFeature(language.FeatureSyntax) {
		out.Tokens = make([]language.Token, 0, len(resp.GetTokens()))
		for _, token := range resp.GetTokens() {
			beginOffset := language.UnknownOffset
			if req.Encoding != language.EncodingNone {
				beginOffset = token.GetText().GetBeginOffset()
			}
			pos := token.GetPartOfSpeech()
			out.Tokens = append(out.Tokens, language.Token{
				Text:        token.GetText().GetContent(),
				BeginOffset: beginOffset,
				Tag:         pos.GetTag().String(),
				Lemma:       token.GetLemma(),
				Gender:      pos.GetGender().String(),
				Mood:        pos.GetMood().String(),
				Person:      pos.GetPerson().String(),
				Proper:      pos.GetProper().String(),
				Form:        pos.GetForm().String(),
				Aspect:      pos.GetAspect().String(),
				Case:        pos.GetCase().String(),
				Number:      pos.GetNumber().String(),
			})
		}
	}

	return out
}
